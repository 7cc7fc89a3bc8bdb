package challenges_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/features/challenges"
	"github.com/germanamz/garmin-mcp/pkg/garmin/garmintest"
)

func TestTools(t *testing.T) {
	require.Len(t, challenges.New(nil).Tools(), 9)
}

func TestGetGoalsDefaultsToActive(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/goal-service/goal/goals", `[]`)
	m := challenges.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_goals", `{}`)
	assert.False(t, isErr)
	assert.Equal(t, "No active goals found", out)
	assert.Equal(t, "status=active", srv.Last().Query)
}

func TestGetPersonalRecord(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/personalrecord-service/personalrecord/prs/runner42", `[{"typeId":3,"value":1234.5}]`)
	m := challenges.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_personal_record", `{}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `[{"typeId":3,"value":1234.5}]`, out)
}

func TestGetBadgeChallengesPaging(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/badgechallenge-service/badgeChallenge/completed", `[]`)
	m := challenges.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_badge_challenges", `{"start":5,"limit":10}`)
	assert.False(t, isErr)
	assert.Equal(t, "No badge challenges found (start 5, limit 10)", out)
	assert.Equal(t, "limit=10&start=5", srv.Last().Query)
}

func TestGetRacePredictionsFailure(t *testing.T) {
	srv := garmintest.NewServer(t)
	m := challenges.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_race_predictions", `{}`)
	assert.True(t, isErr)
	assert.Contains(t, out, "Error retrieving race predictions: 404")
}
