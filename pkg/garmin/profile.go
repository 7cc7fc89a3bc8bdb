package garmin

import (
	"context"
	"encoding/json"
)

// UserProfile returns the social profile.
func (a *API) UserProfile(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/userprofile-service/socialProfile", nil)
}

// UserSettings returns the user settings, including the measurement system.
func (a *API) UserSettings(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/userprofile-service/userprofile/user-settings", nil)
}

// UserProfileSettings returns the profile settings.
func (a *API) UserProfileSettings(ctx context.Context) (json.RawMessage, error) {
	return a.get(ctx, "/userprofile-service/userprofile/settings", nil)
}
