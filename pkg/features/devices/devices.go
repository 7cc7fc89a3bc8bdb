// Package devices provides the device tools: registered devices, settings,
// alarms, and solar charging data.
package devices

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/germanamz/garmin-mcp/pkg/features/kit"
	"github.com/germanamz/garmin-mcp/pkg/tools/result"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolschema"
)

// Client is the part of the Connect API this module uses.
type Client interface {
	Devices(ctx context.Context) (json.RawMessage, error)
	DeviceLastUsed(ctx context.Context) (json.RawMessage, error)
	DeviceSettings(ctx context.Context, deviceID string) (json.RawMessage, error)
	PrimaryTrainingDevice(ctx context.Context) (json.RawMessage, error)
	DeviceSolarData(ctx context.Context, deviceID, start, end string) (json.RawMessage, error)
}

// Module owns the device tools.
type Module struct {
	client kit.Binding[Client]
}

// New creates the module bound to client.
func New(client Client) *Module {
	return &Module{client: kit.Bind(client)}
}

// Name returns the module name.
func (m *Module) Name() string { return "devices" }

// Tools returns the module's tools.
func (m *Module) Tools() []toolbox.Tool {
	b := m.client

	return []toolbox.Tool{
		kit.NoArgTool(b, "get_devices", "Get all registered devices", "devices", Client.Devices),
		kit.NoArgTool(b, "get_device_last_used", "Get the most recently used device", "last used device", Client.DeviceLastUsed),
		m.settings(),
		kit.NoArgTool(b, "get_primary_training_device", "Get the primary training device", "primary training device", Client.PrimaryTrainingDevice),
		m.solarData(),
		m.alarms(),
	}
}

type deviceInput struct {
	DeviceID string `json:"device_id"`
}

func (m *Module) settings() toolbox.Tool {
	params := []toolschema.Param{toolschema.String("device_id", "ID of the device")}

	return kit.Custom(m.client, "get_device_settings", "Get the settings of a device", params,
		func(ctx context.Context, c Client, in deviceInput) result.Result {
			return result.Wrap("device settings", result.For("device "+in.DeviceID), func() (json.RawMessage, error) {
				return c.DeviceSettings(ctx, in.DeviceID)
			})
		}, kit.ReadOnly())
}

type solarInput struct {
	deviceInput
	kit.RangeInput
}

func (m *Module) solarData() toolbox.Tool {
	params := []toolschema.Param{
		toolschema.String("device_id", "ID of the device"),
		toolschema.Date("start_date", "Start date"),
		toolschema.Date("end_date", "End date"),
	}

	return kit.Custom(m.client, "get_device_solar_data", "Get solar charging data of a device", params,
		func(ctx context.Context, c Client, in solarInput) result.Result {
			return result.Wrap("solar data", result.Between(in.StartDate, in.EndDate), func() (json.RawMessage, error) {
				return c.DeviceSolarData(ctx, in.DeviceID, in.StartDate, in.EndDate)
			})
		}, kit.ReadOnly())
}

// alarms reads the settings of every registered device and collects their
// alarms into one list.
func (m *Module) alarms() toolbox.Tool {
	return kit.Custom(m.client, "get_device_alarms", "Get the alarms configured on all devices", nil,
		func(ctx context.Context, c Client, _ struct{}) result.Result {
			return result.Wrap("device alarms", "", func() (json.RawMessage, error) {
				list, err := c.Devices(ctx)
				if err != nil {
					return nil, err
				}

				alarms := make([]json.RawMessage, 0)
				for _, device := range gjson.ParseBytes(list).Array() {
					id := device.Get("deviceId").String()
					if id == "" {
						continue
					}

					settings, err := c.DeviceSettings(ctx, id)
					if err != nil {
						return nil, err
					}
					for _, alarm := range gjson.GetBytes(settings, "alarms").Array() {
						alarms = append(alarms, json.RawMessage(alarm.Raw))
					}
				}

				return json.Marshal(alarms)
			})
		}, kit.ReadOnly())
}
