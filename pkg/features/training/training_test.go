package training_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/features/training"
	"github.com/germanamz/garmin-mcp/pkg/garmin/garmintest"
)

func TestTools(t *testing.T) {
	require.Len(t, training.New(nil).Tools(), 9)
}

func TestHillScoreSingleDate(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/metrics-service/metrics/hillscore/stats", `{"hillScoreDTOList":[{"overallScore":55}]}`)
	m := training.New(srv.Client(t))

	_, isErr := garmintest.Call(t, m.Tools(), "get_hill_score", `{"start_date":"2024-01-15"}`)
	require.False(t, isErr)
	assert.Equal(t, "aggregation=daily&endDate=2024-01-15&startDate=2024-01-15", srv.Last().Query)
}

func TestEnduranceScoreRange(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/metrics-service/metrics/endurancescore/stats", `{}`)
	m := training.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_endurance_score", `{"start_date":"2024-01-01","end_date":"2024-03-31"}`)
	assert.False(t, isErr)
	assert.Equal(t, "No endurance score data found between 2024-01-01 and 2024-03-31", out)
	assert.Equal(t, "aggregation=weekly&endDate=2024-03-31&startDate=2024-01-01", srv.Last().Query)
}

func TestProgressSummaryDefaultMetric(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/fitnessstats-service/activity", `[{"countOfActivities":3}]`)
	m := training.New(srv.Client(t))

	_, isErr := garmintest.Call(t, m.Tools(), "get_progress_summary_between_dates", `{"start_date":"2024-01-01","end_date":"2024-01-31"}`)
	require.False(t, isErr)
	assert.Contains(t, srv.Last().Query, "metric=distance")
}

func TestGetTrainingEffect(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/activity-service/activity/42", `{
		"activityId": 42,
		"summaryDTO": {"distance": 10000, "trainingEffect": 3.4, "anaerobicTrainingEffect": 1.2, "trainingEffectLabel": "TEMPO"}
	}`)
	m := training.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_training_effect", `{"activity_id":42}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `{"trainingEffect":3.4,"anaerobicTrainingEffect":1.2,"trainingEffectLabel":"TEMPO"}`, out)
}

func TestGetTrainingEffectAbsent(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/activity-service/activity/42", `{"activityId":42,"summaryDTO":{"distance":10000}}`)
	m := training.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_training_effect", `{"activity_id":42}`)
	assert.False(t, isErr)
	assert.Equal(t, "No training effect data found for activity 42", out)
}

func TestGetTrainingPlanByID(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/trainingplan-service/trainingplan/phased/7", `{"trainingPlanId":7}`)
	m := training.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_training_plan_by_id", `{"plan_id":7}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `{"trainingPlanId":7}`, out)
}

func TestTrainingEffectFieldOrder(t *testing.T) {
	out, err := training.TrainingEffect([]byte(`{"summaryDTO":{"activityTrainingLoad":80,"trainingEffect":2.0}}`))
	require.NoError(t, err)
	assert.Equal(t, `{"trainingEffect":2.0,"activityTrainingLoad":80}`, string(out))
}
