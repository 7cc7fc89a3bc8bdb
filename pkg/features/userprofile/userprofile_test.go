package userprofile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/features/userprofile"
	"github.com/germanamz/garmin-mcp/pkg/garmin/garmintest"
)

func TestTools(t *testing.T) {
	tools := userprofile.New(nil).Tools()
	require.Len(t, tools, 4)
	assert.Equal(t, "user_profile", userprofile.New(nil).Name())
}

func TestGetFullName(t *testing.T) {
	srv := garmintest.NewServer(t)
	m := userprofile.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_full_name", `{}`)
	assert.False(t, isErr)
	assert.Equal(t, `"Ada Runner"`, out)
	assert.Empty(t, srv.Requests())
}

func TestGetUnitSystem(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/userprofile-service/userprofile/user-settings", `{"userData":{"measurementSystem":"metric","weight":70000}}`)
	m := userprofile.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_unit_system", `{}`)
	assert.False(t, isErr)
	assert.Equal(t, `"metric"`, out)
}

func TestGetUnitSystemMissing(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/userprofile-service/userprofile/user-settings", `{"userData":{}}`)
	m := userprofile.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_unit_system", `{}`)
	assert.False(t, isErr)
	assert.Equal(t, "No unit system found", out)
}

func TestGetUserProfileSettingsFailure(t *testing.T) {
	srv := garmintest.NewServer(t)
	m := userprofile.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_userprofile_settings", `{}`)
	assert.True(t, isErr)
	assert.Contains(t, out, "Error retrieving user profile settings: 404")
}
