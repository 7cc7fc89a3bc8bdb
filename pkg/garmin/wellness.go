package garmin

import (
	"context"
	"encoding/json"
	"net/url"
)

// UserSummary returns the daily summary for date.
func (a *API) UserSummary(ctx context.Context, date string) (json.RawMessage, error) {
	dn, err := a.displayName()
	if err != nil {
		return nil, err
	}
	return a.getf(ctx, url.Values{"calendarDate": {date}}, "/usersummary-service/usersummary/daily/%s", dn)
}

// Stats returns the daily activity stats for date.
func (a *API) Stats(ctx context.Context, date string) (json.RawMessage, error) {
	return a.UserSummary(ctx, date)
}

// BodyComposition returns body composition for a single date.
func (a *API) BodyComposition(ctx context.Context, date string) (json.RawMessage, error) {
	return a.BodyCompositionRange(ctx, date, date)
}

// BodyCompositionRange returns body composition between start and end.
func (a *API) BodyCompositionRange(ctx context.Context, start, end string) (json.RawMessage, error) {
	return a.get(ctx, "/weight-service/weight/dateRange", url.Values{"startDate": {start}, "endDate": {end}})
}

// StepsData returns the intraday steps chart for date.
func (a *API) StepsData(ctx context.Context, date string) (json.RawMessage, error) {
	dn, err := a.displayName()
	if err != nil {
		return nil, err
	}
	return a.getf(ctx, url.Values{"date": {date}}, "/wellness-service/wellness/dailySummaryChart/%s", dn)
}

// DailySteps returns per-day step totals between start and end.
func (a *API) DailySteps(ctx context.Context, start, end string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/usersummary-service/stats/steps/daily/%s/%s", seg(start), seg(end))
}

// TrainingReadiness returns training readiness for date.
func (a *API) TrainingReadiness(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/metrics-service/metrics/trainingreadiness/%s", seg(date))
}

// BodyBattery returns body battery reports between start and end.
func (a *API) BodyBattery(ctx context.Context, start, end string) (json.RawMessage, error) {
	return a.get(ctx, "/wellness-service/wellness/bodyBattery/reports/daily", url.Values{"startDate": {start}, "endDate": {end}})
}

// BodyBatteryEvents returns body battery events for date.
func (a *API) BodyBatteryEvents(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/wellness-service/wellness/bodyBattery/events/%s", seg(date))
}

// BloodPressure returns blood pressure readings between start and end.
func (a *API) BloodPressure(ctx context.Context, start, end string) (json.RawMessage, error) {
	return a.getf(ctx, url.Values{"includeAll": {"true"}}, "/bloodpressure-service/bloodpressure/range/%s/%s", seg(start), seg(end))
}

// Floors returns floors climbed for date.
func (a *API) Floors(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/wellness-service/wellness/floorsChartData/daily/%s", seg(date))
}

// TrainingStatus returns aggregated training status for date.
func (a *API) TrainingStatus(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/metrics-service/metrics/trainingstatus/aggregated/%s", seg(date))
}

// RestingHeartRate returns the resting heart rate metric for date.
func (a *API) RestingHeartRate(ctx context.Context, date string) (json.RawMessage, error) {
	dn, err := a.displayName()
	if err != nil {
		return nil, err
	}
	q := url.Values{"fromDate": {date}, "untilDate": {date}, "metricId": {"60"}}
	return a.getf(ctx, q, "/userstats-service/wellness/daily/%s", dn)
}

// HeartRates returns the heart rate timeline for date.
func (a *API) HeartRates(ctx context.Context, date string) (json.RawMessage, error) {
	dn, err := a.displayName()
	if err != nil {
		return nil, err
	}
	return a.getf(ctx, url.Values{"date": {date}}, "/wellness-service/wellness/dailyHeartRate/%s", dn)
}

// Hydration returns hydration data for date.
func (a *API) Hydration(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/usersummary-service/usersummary/hydration/daily/%s", seg(date))
}

// Sleep returns the detailed sleep payload for date.
func (a *API) Sleep(ctx context.Context, date string) (json.RawMessage, error) {
	dn, err := a.displayName()
	if err != nil {
		return nil, err
	}
	q := url.Values{"date": {date}, "nonSleepBufferMinutes": {"60"}}
	return a.getf(ctx, q, "/wellness-service/wellness/dailySleepData/%s", dn)
}

// Stress returns stress data for date.
func (a *API) Stress(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/wellness-service/wellness/dailyStress/%s", seg(date))
}

// AllDayStress returns the all-day stress timeline for date.
func (a *API) AllDayStress(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/wellness-service/wellness/dailyStress/%s", seg(date))
}

// Respiration returns respiration data for date.
func (a *API) Respiration(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/wellness-service/wellness/daily/respiration/%s", seg(date))
}

// SpO2 returns blood oxygen data for date.
func (a *API) SpO2(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/wellness-service/wellness/daily/spo2/%s", seg(date))
}

// AllDayEvents returns daily wellness events for date.
func (a *API) AllDayEvents(ctx context.Context, date string) (json.RawMessage, error) {
	return a.get(ctx, "/wellness-service/wellness/dailyEvents", url.Values{"calendarDate": {date}})
}
