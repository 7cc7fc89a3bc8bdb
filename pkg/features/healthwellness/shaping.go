package healthwellness

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/germanamz/garmin-mcp/pkg/tools/result"
)

// sleepField maps a summary key to its path inside dailySleepDTO.
type sleepField struct {
	key  string
	path string
}

var dailySleepFields = []sleepField{
	{"sleepTimeSeconds", "sleepTimeSeconds"},
	{"napTimeSeconds", "napTimeSeconds"},
	{"sleepStartTimestampGMT", "sleepStartTimestampGMT"},
	{"sleepEndTimestampGMT", "sleepEndTimestampGMT"},
	{"overallSleepScore", "sleepScores.overall.value"},
	{"sleepScoreQualifier", "sleepScores.overall.qualifierKey"},
	{"sleepScoreFeedback", "sleepScores.overall.optimalStart"},
	{"deepSleepSeconds", "deepSleepSeconds"},
	{"lightSleepSeconds", "lightSleepSeconds"},
	{"remSleepSeconds", "remSleepSeconds"},
	{"awakeSleepSeconds", "awakeSleepSeconds"},
	{"awakeCount", "awakeCount"},
	{"restlessMomentsCount", "restlessMomentsCount"},
	{"avgSleepStress", "avgSleepStress"},
	{"restingHeartRate", "restingHeartRate"},
}

var spo2Fields = []sleepField{
	{"avgSpO2", "averageSpo2"},
	{"lowestSpO2", "lowestSpo2"},
}

// SummarizeSleep reduces a detailed sleep payload to the compact summary:
// the fixed dailySleepDTO and SpO2 fields, overnight HRV when present, phase
// percentages of total sleep (one decimal), and total sleep in hours (two
// decimals). Derived fields are omitted when total sleep is zero or absent.
func SummarizeSleep(raw json.RawMessage) (json.RawMessage, error) {
	doc := gjson.ParseBytes(raw)
	out := "{}"

	var err error
	set := func(key, value string) {
		if err != nil {
			return
		}
		out, err = sjson.SetRaw(out, key, value)
	}

	if daily := doc.Get("dailySleepDTO"); !result.IsEmpty(json.RawMessage(daily.Raw)) {
		for _, f := range dailySleepFields {
			set(f.key, rawOrNull(daily.Get(f.path)))
		}
	}

	if spo2 := doc.Get("wellnessSpO2SleepSummaryDTO"); !result.IsEmpty(json.RawMessage(spo2.Raw)) {
		for _, f := range spo2Fields {
			set(f.key, rawOrNull(spo2.Get(f.path)))
		}
	}

	if hrv := doc.Get("avgOvernightHrv"); hrv.Exists() {
		set("avgOvernightHrv", hrv.Raw)
	}

	total := gjson.Get(out, "sleepTimeSeconds").Float()
	if total > 0 {
		for _, phase := range []string{"deep", "light", "rem"} {
			part := gjson.Get(out, phase+"SleepSeconds").Float()
			set(phase+"SleepPercentage", roundedNumber(part/total*100, 1))
		}
		set("sleepDurationHours", roundedNumber(total/3600, 2))
	}

	if err != nil {
		return nil, fmt.Errorf("summarize sleep: %w", err)
	}

	return json.RawMessage(out), nil
}

// MergeStatsAndBody overlays the body composition averages onto the daily
// stats object.
func MergeStatsAndBody(stats, body json.RawMessage) (json.RawMessage, error) {
	out := "{}"
	if s := gjson.ParseBytes(stats); s.IsObject() {
		out = s.Raw
	}

	var err error
	gjson.GetBytes(body, "totalAverage").ForEach(func(key, value gjson.Result) bool {
		out, err = sjson.SetRaw(out, escapeKey(key.String()), value.Raw)
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("merge stats and body: %w", err)
	}

	return json.RawMessage(out), nil
}

func rawOrNull(r gjson.Result) string {
	if !r.Exists() {
		return "null"
	}
	return r.Raw
}

// roundedNumber renders v rounded to places decimals. Rounding works on the
// exact binary value with ties to even, and whole numbers keep a ".0", so 0.045
// becomes 0.04 and 25 becomes 25.0.
func roundedNumber(v float64, places int) string {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

var keyEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func escapeKey(k string) string { return keyEscaper.Replace(k) }
