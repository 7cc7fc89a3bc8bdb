package devices_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/garmin-mcp/pkg/features/devices"
	"github.com/germanamz/garmin-mcp/pkg/garmin/garmintest"
)

func TestTools(t *testing.T) {
	require.Len(t, devices.New(nil).Tools(), 6)
}

func TestGetDeviceSettings(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/device-service/deviceservice/device-info/settings/3321", `{"timeFormat":"24h"}`)
	m := devices.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_device_settings", `{"device_id":"3321"}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `{"timeFormat":"24h"}`, out)
}

func TestGetDeviceSolarDataEmpty(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/web-gateway/solar/3321/2024-01-01/2024-01-07", `null`)
	m := devices.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_device_solar_data",
		`{"device_id":"3321","start_date":"2024-01-01","end_date":"2024-01-07"}`)
	assert.False(t, isErr)
	assert.Equal(t, "No solar data found between 2024-01-01 and 2024-01-07", out)
}

func TestGetDeviceAlarms(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/device-service/deviceregistration/devices", `[{"deviceId":1},{"deviceId":2}]`)
	srv.OK("/device-service/deviceservice/device-info/settings/1", `{"alarms":[{"alarmTime":420}]}`)
	srv.OK("/device-service/deviceservice/device-info/settings/2", `{"alarms":[{"alarmTime":480},{"alarmTime":540}]}`)
	m := devices.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_device_alarms", `{}`)
	assert.False(t, isErr)
	assert.JSONEq(t, `[{"alarmTime":420},{"alarmTime":480},{"alarmTime":540}]`, out)
}

func TestGetDeviceAlarmsNone(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/device-service/deviceregistration/devices", `[{"deviceId":1}]`)
	srv.OK("/device-service/deviceservice/device-info/settings/1", `{}`)
	m := devices.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_device_alarms", `{}`)
	assert.False(t, isErr)
	assert.Equal(t, "No device alarms found", out)
}

func TestGetDeviceAlarmsSettingsFailure(t *testing.T) {
	srv := garmintest.NewServer(t)
	srv.OK("/device-service/deviceregistration/devices", `[{"deviceId":1}]`)
	m := devices.New(srv.Client(t))

	out, isErr := garmintest.Call(t, m.Tools(), "get_device_alarms", `{}`)
	assert.True(t, isErr)
	assert.Contains(t, out, "Error retrieving device alarms")
}
