package garmin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Gear returns the gear owned by a user profile.
func (a *API) Gear(ctx context.Context, profilePK int64) (json.RawMessage, error) {
	return a.get(ctx, "/gear-service/gear/filterGear", url.Values{"userProfilePk": {itoa(profilePK)}})
}

// GearDefaults returns the default gear per activity type.
func (a *API) GearDefaults(ctx context.Context, profilePK int64) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/gear-service/gear/user/%s/activityTypes", itoa(profilePK))
}

// GearStats returns usage statistics of one gear item.
func (a *API) GearStats(ctx context.Context, gearUUID string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/gear-service/gear/stats/%s", seg(gearUUID))
}

// LinkGear links a gear item to an activity.
func (a *API) LinkGear(ctx context.Context, gearUUID string, activityID int64) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodPut, "/gear-service/gear/link/"+seg(gearUUID)+"/activity/"+itoa(activityID), nil)
}

// UnlinkGear removes a gear item from an activity.
func (a *API) UnlinkGear(ctx context.Context, gearUUID string, activityID int64) (json.RawMessage, error) {
	return a.SendJSON(ctx, http.MethodPut, "/gear-service/gear/unlink/"+seg(gearUUID)+"/activity/"+itoa(activityID), nil)
}
