package healthwellness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const detailedSleep = `{
  "dailySleepDTO": {
    "sleepTimeSeconds": 28800,
    "napTimeSeconds": 0,
    "sleepStartTimestampGMT": 1704150000000,
    "sleepEndTimestampGMT": 1704178800000,
    "deepSleepSeconds": 7200,
    "lightSleepSeconds": 14400,
    "remSleepSeconds": 5400,
    "awakeSleepSeconds": 1800,
    "awakeCount": 2,
    "avgSleepStress": 14.5,
    "restingHeartRate": 48,
    "sleepScores": {"overall": {"value": 82, "qualifierKey": "GOOD", "optimalStart": 80}},
    "sleepLevels": [{"startGMT": "x"}]
  },
  "wellnessSpO2SleepSummaryDTO": {"averageSpo2": 95, "lowestSpo2": 89},
  "avgOvernightHrv": 61,
  "sleepMovement": [{"activityLevel": 1.2}]
}`

func TestSummarizeSleepDerivedFields(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(detailedSleep))
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.InDelta(t, 25.0, doc.Get("deepSleepPercentage").Float(), 1e-9)
	assert.InDelta(t, 50.0, doc.Get("lightSleepPercentage").Float(), 1e-9)
	assert.InDelta(t, 18.8, doc.Get("remSleepPercentage").Float(), 1e-9)
	assert.InDelta(t, 8.0, doc.Get("sleepDurationHours").Float(), 1e-9)
}

func TestSummarizeSleepFields(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(detailedSleep))
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.Equal(t, int64(82), doc.Get("overallSleepScore").Int())
	assert.Equal(t, "GOOD", doc.Get("sleepScoreQualifier").String())
	assert.Equal(t, int64(80), doc.Get("sleepScoreFeedback").Int())
	assert.Equal(t, int64(95), doc.Get("avgSpO2").Int())
	assert.Equal(t, int64(89), doc.Get("lowestSpO2").Int())
	assert.Equal(t, int64(61), doc.Get("avgOvernightHrv").Int())

	// Absent source fields are carried as null.
	restless := doc.Get("restlessMomentsCount")
	assert.True(t, restless.Exists())
	assert.Equal(t, gjson.Null, restless.Type)

	// Time series are dropped.
	assert.False(t, doc.Get("sleepLevels").Exists())
	assert.False(t, doc.Get("sleepMovement").Exists())

	var keys []string
	doc.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	assert.Equal(t, []string{
		"sleepTimeSeconds", "napTimeSeconds", "sleepStartTimestampGMT", "sleepEndTimestampGMT",
		"overallSleepScore", "sleepScoreQualifier", "sleepScoreFeedback",
		"deepSleepSeconds", "lightSleepSeconds", "remSleepSeconds", "awakeSleepSeconds",
		"awakeCount", "restlessMomentsCount", "avgSleepStress", "restingHeartRate",
		"avgSpO2", "lowestSpO2", "avgOvernightHrv",
		"deepSleepPercentage", "lightSleepPercentage", "remSleepPercentage", "sleepDurationHours",
	}, keys)
}

func TestSummarizeSleepZeroTotal(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(`{"dailySleepDTO":{"sleepTimeSeconds":0,"deepSleepSeconds":0}}`))
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.Equal(t, int64(0), doc.Get("sleepTimeSeconds").Int())
	assert.False(t, doc.Get("deepSleepPercentage").Exists())
	assert.False(t, doc.Get("sleepDurationHours").Exists())
}

func TestSummarizeSleepAbsentTotal(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(`{"dailySleepDTO":{"awakeCount":1}}`))
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.Equal(t, gjson.Null, doc.Get("sleepTimeSeconds").Type)
	assert.False(t, doc.Get("remSleepPercentage").Exists())
	assert.False(t, doc.Get("sleepDurationHours").Exists())
}

func TestSummarizeSleepMissingPhasesCountAsZero(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(`{"dailySleepDTO":{"sleepTimeSeconds":3600}}`))
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.InDelta(t, 0.0, doc.Get("deepSleepPercentage").Float(), 1e-9)
	assert.True(t, doc.Get("deepSleepPercentage").Exists())
	assert.InDelta(t, 1.0, doc.Get("sleepDurationHours").Float(), 1e-9)
}

func TestSummarizeSleepWithoutDTOs(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(`{"dailySleepDTO":{},"avgOvernightHrv":null}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"avgOvernightHrv":null}`, string(out))
}

func TestSummarizeSleepRounding(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(`{"dailySleepDTO":{"sleepTimeSeconds":25000,"deepSleepSeconds":4321}}`))
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.InDelta(t, 17.3, doc.Get("deepSleepPercentage").Float(), 1e-9)
	assert.InDelta(t, 6.94, doc.Get("sleepDurationHours").Float(), 1e-9)
}

func TestSummarizeSleepRoundingTies(t *testing.T) {
	// 360/28800 is exactly 1.25%: the tie goes to the even digit.
	out, err := SummarizeSleep(json.RawMessage(`{"dailySleepDTO":{"sleepTimeSeconds":28800,"deepSleepSeconds":360}}`))
	require.NoError(t, err)
	assert.Equal(t, "1.2", gjson.GetBytes(out, "deepSleepPercentage").Raw)

	// 162 s is 0.045 h, stored just below the tie.
	out, err = SummarizeSleep(json.RawMessage(`{"dailySleepDTO":{"sleepTimeSeconds":162}}`))
	require.NoError(t, err)
	assert.Equal(t, "0.04", gjson.GetBytes(out, "sleepDurationHours").Raw)
}

func TestSummarizeSleepWholeNumbersKeepDecimal(t *testing.T) {
	out, err := SummarizeSleep(json.RawMessage(detailedSleep))
	require.NoError(t, err)

	doc := gjson.ParseBytes(out)
	assert.Equal(t, "25.0", doc.Get("deepSleepPercentage").Raw)
	assert.Equal(t, "50.0", doc.Get("lightSleepPercentage").Raw)
	assert.Equal(t, "18.8", doc.Get("remSleepPercentage").Raw)
	assert.Equal(t, "8.0", doc.Get("sleepDurationHours").Raw)
}

func TestRoundedNumber(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   string
	}{
		{1.25, 1, "1.2"},
		{1.35, 1, "1.4"},
		{0.045, 2, "0.04"},
		{6.944444, 2, "6.94"},
		{0, 1, "0.0"},
		{100, 1, "100.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundedNumber(tt.v, tt.places), "%v to %d places", tt.v, tt.places)
	}
}

func TestMergeStatsAndBody(t *testing.T) {
	stats := json.RawMessage(`{"totalSteps":9000,"weight":null}`)
	body := json.RawMessage(`{"dateWeightList":[],"totalAverage":{"weight":70500.0,"bmi":22.1}}`)

	out, err := MergeStatsAndBody(stats, body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalSteps":9000,"weight":70500.0,"bmi":22.1}`, string(out))
}

func TestMergeStatsAndBodyEmptyInputs(t *testing.T) {
	out, err := MergeStatsAndBody(nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))
}
