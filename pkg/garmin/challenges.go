package garmin

import (
	"context"
	"encoding/json"
	"net/url"
)

// Goals returns goals with the given status (active, future, or past).
func (a *API) Goals(ctx context.Context, status string) (json.RawMessage, error) {
	return a.get(ctx, "/goal-service/goal/goals", url.Values{"status": {status}})
}

// PersonalRecords returns the user's personal records.
func (a *API) PersonalRecords(ctx context.Context) (json.RawMessage, error) {
	dn, err := a.displayName()
	if err != nil {
		return nil, err
	}
	return a.getf(ctx, nil, "/personalrecord-service/personalrecord/prs/%s", dn)
}

// EarnedBadges returns earned badges.
func (a *API) EarnedBadges(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/badge-service/badge/earned", nil)
}

// AdhocChallenges returns a page of historical ad-hoc challenges.
func (a *API) AdhocChallenges(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return a.get(ctx, "/adhocchallenge-service/adHocChallenge/historical", paging(start, limit))
}

// AvailableBadgeChallenges returns a page of available badge challenges.
func (a *API) AvailableBadgeChallenges(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return a.get(ctx, "/badgechallenge-service/badgeChallenge/available", paging(start, limit))
}

// BadgeChallenges returns a page of completed badge challenges.
func (a *API) BadgeChallenges(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return a.get(ctx, "/badgechallenge-service/badgeChallenge/completed", paging(start, limit))
}

// NonCompletedBadgeChallenges returns a page of badge challenges not yet completed.
func (a *API) NonCompletedBadgeChallenges(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return a.get(ctx, "/badgechallenge-service/badgeChallenge/non-completed", paging(start, limit))
}

// RacePredictions returns the latest race time predictions.
func (a *API) RacePredictions(ctx context.Context) (json.RawMessage, error) {
	dn, err := a.displayName()
	if err != nil {
		return nil, err
	}
	return a.getf(ctx, nil, "/metrics-service/metrics/racepredictions/latest/%s", dn)
}

// InProgressVirtualChallenges returns a page of virtual challenges in progress.
func (a *API) InProgressVirtualChallenges(ctx context.Context, start, limit int) (json.RawMessage, error) {
	return a.get(ctx, "/badgechallenge-service/virtualChallenge/inProgress", paging(start, limit))
}
