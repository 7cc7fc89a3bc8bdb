package garmin

import (
	"context"
	"encoding/json"
)

// PregnancySummary returns the pregnancy snapshot.
func (a *API) PregnancySummary(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/periodichealth-service/menstrualcycle/pregnancysnapshot", nil)
}

// MenstrualDay returns menstrual cycle data for date.
func (a *API) MenstrualDay(ctx context.Context, date string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/periodichealth-service/menstrualcycle/dayview/%s", seg(date))
}

// MenstrualCalendar returns menstrual calendar data between start and end.
func (a *API) MenstrualCalendar(ctx context.Context, start, end string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/periodichealth-service/menstrualcycle/calendar/%s/%s", seg(start), seg(end))
}
