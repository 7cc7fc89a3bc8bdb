package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the Connect API host.
const DefaultBaseURL = "https://connectapi.garmin.com"

// ErrNoProfile is returned by profile-scoped calls before LoadProfile succeeds.
var ErrNoProfile = errors.New("garmin: profile not loaded")

// Profile identifies the authenticated user.
type Profile struct {
	DisplayName string
	FullName    string
	ProfilePK   int64
}

// API is the Connect API client. It is safe for concurrent use once
// LoadProfile has returned.
type API struct {
	Adapter

	profile atomic.Pointer[Profile]
}

// New creates an API using the given access token. A nil client falls back to
// a default http.Client.
func New(baseURL, token string, client *http.Client) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &API{
		Adapter: Adapter{
			BaseURL: baseURL,
			Auth:    Auth{Token: token},
			Client:  client,
			Headers: map[string]string{
				"User-Agent": "garmin-mcp",
				"NK":         "NT",
			},
		},
	}
}

// LoadProfile fetches the social profile and caches the user's identity.
func (a *API) LoadProfile(ctx context.Context) (*Profile, error) {
	raw, err := a.GetJSON(ctx, "/userprofile-service/socialProfile", nil)
	if err != nil {
		return nil, fmt.Errorf("garmin: load profile: %w", err)
	}

	res := gjson.ParseBytes(raw)
	p := &Profile{
		DisplayName: res.Get("displayName").String(),
		FullName:    res.Get("fullName").String(),
		ProfilePK:   res.Get("profileId").Int(),
	}
	if p.DisplayName == "" {
		return nil, fmt.Errorf("garmin: load profile: %w: missing displayName", ErrNoProfile)
	}

	a.profile.Store(p)

	return p, nil
}

// Profile returns the cached profile, or nil before LoadProfile.
func (a *API) Profile() *Profile { return a.profile.Load() }

func (a *API) displayName() (string, error) {
	p := a.profile.Load()
	if p == nil {
		return "", ErrNoProfile
	}
	return url.PathEscape(p.DisplayName), nil
}

// ProfilePK returns the numeric user profile key.
func (a *API) ProfilePK() (int64, error) {
	p := a.profile.Load()
	if p == nil {
		return 0, ErrNoProfile
	}
	return p.ProfilePK, nil
}

// FullName returns the user's full name as a JSON string.
func (a *API) FullName(_ context.Context) (json.RawMessage, error) {
	p := a.profile.Load()
	if p == nil {
		return nil, ErrNoProfile
	}
	return json.Marshal(p.FullName)
}

func (a *API) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return a.GetJSON(ctx, path, query)
}

func (a *API) getf(ctx context.Context, query url.Values, format string, args ...any) (json.RawMessage, error) {
	return a.GetJSON(ctx, fmt.Sprintf(format, args...), query)
}

func seg(s string) string { return url.PathEscape(s) }

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func paging(start, limit int) url.Values {
	return url.Values{
		"start": {strconv.Itoa(start)},
		"limit": {strconv.Itoa(limit)},
	}
}
