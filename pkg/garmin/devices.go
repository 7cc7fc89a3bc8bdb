package garmin

import (
	"context"
	"encoding/json"
)

// Devices returns the registered devices.
func (a *API) Devices(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/device-service/deviceregistration/devices", nil)
}

// DeviceLastUsed returns the most recently synced device.
func (a *API) DeviceLastUsed(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/device-service/deviceservice/mylastused", nil)
}

// DeviceSettings returns the settings of one device.
func (a *API) DeviceSettings(ctx context.Context, deviceID string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/device-service/deviceservice/device-info/settings/%s", seg(deviceID))
}

// PrimaryTrainingDevice returns the primary training device selection.
func (a *API) PrimaryTrainingDevice(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/web-gateway/device-info/primary-training-device", nil)
}

// DeviceSolarData returns solar charging data of a device between start and end.
func (a *API) DeviceSolarData(ctx context.Context, deviceID, start, end string) (json.RawMessage, error) {
	return a.getf(ctx, nil, "/web-gateway/solar/%s/%s/%s", seg(deviceID), seg(start), seg(end))
}
