package gear_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/features/gear"
	"github.com/germanamz/garmin-mcp/pkg/garmin"
	"github.com/germanamz/garmin-mcp/pkg/garmin/garmintest"
)

func TestTools(t *testing.T) {
	require.Len(t, gear.New(nil).Tools(), 5)
}

func TestGetGearDefaultsToOwnProfile(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/gear-service/gear/filterGear", `[{"uuid":"abc"}]`)
	m := gear.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_gear", `{}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `[{"uuid":"abc"}]`, out)
	assert.Equal(t, "userProfilePk=9001", srv.Last().Query)
}

func TestGetGearDefaultsExplicitProfile(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/gear-service/gear/user/77/activityTypes", `[]`)
	m := gear.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_gear_defaults", `{"user_profile_id":77}`)
	assert.False(t, isErr)
	assert.Equal(t, "No gear defaults found for profile 77", out)
}

func TestGetGearWithoutProfile(t *testing.T) {
	m := gear.New(garmin.New("http://127.0.0.1:0", "token", nil))

	out, isErr := garmintest.Call(t, m.Tools(), "get_gear", `{}`)
	assert.True(t, isErr)
	assert.Contains(t, out, "Error retrieving gear: garmin: profile not loaded")
}

func TestAddGearToActivity(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.Handle(http.MethodPut, "/gear-service/gear/link/abc/activity/42", http.StatusOK, `{"gearPk":5}`)
	m := gear.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "add_gear_to_activity", `{"gear_uuid":"abc","activity_id":42}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `{"gearPk":5}`, out)
}

func TestRemoveGearFromActivity(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.Handle(http.MethodPut, "/gear-service/gear/unlink/abc/activity/42", http.StatusNoContent, "")
	m := gear.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "remove_gear_from_activity", `{"gear_uuid":"abc","activity_id":42}`)
	assert.False(t, isErr)
	assert.Equal(t, "Gear abc removed from activity 42", out)
}
