package womenshealth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/features/womenshealth"
	"github.com/germanamz/garmin-mcp/pkg/garmin/garmintest"
)

func TestTools(t *testing.T) {
	require.Len(t, womenshealth.New(nil).Tools(), 3)
}

func TestMenstrualDataForDate(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/periodichealth-service/menstrualcycle/dayview/2024-01-15", `{"daySummary":{"dayInCycle":5}}`)
	m := womenshealth.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_menstrual_data_for_date", `{"date":"2024-01-15"}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `{"daySummary":{"dayInCycle":5}}`, out)
}

func TestMenstrualCalendarEmpty(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/periodichealth-service/menstrualcycle/calendar/2024-01-01/2024-01-31", `{}`)
	m := womenshealth.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_menstrual_calendar_data", `{"start_date":"2024-01-01","end_date":"2024-01-31"}`)
	assert.False(t, isErr)
	assert.Equal(t, "No menstrual calendar data found between 2024-01-01 and 2024-01-31", out)
}

func TestPregnancySummaryNotConfigured(t *testing.T) {
	out, isErr := garmintest.Call(t, womenshealth.New(nil).Tools(), "get_pregnancy_summary", `{}`)
	assert.True(t, isErr)
	assert.Contains(t, out, "not configured")
}
