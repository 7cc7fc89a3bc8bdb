// Package session restores an authenticated Connect API client from a token
// store written by a prior interactive login. It never prompts; a missing or
// stale store is reported so the operator can log in again.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/germanamz/garmin-mcp/pkg/garmin"
)

// TokenFile is the OAuth2 token file inside a token store directory.
const TokenFile = "oauth2_token.json"

// inlineThreshold is the length above which a token store value is taken to
// be a base64 blob rather than a path.
const inlineThreshold = 512

var (
	// ErrCredentialsMissing means no token store could be found.
	ErrCredentialsMissing = errors.New("session: credentials missing")
	// ErrSessionExpired means the stored access token has expired.
	ErrSessionExpired = errors.New("session: session expired")
	// ErrAuthRejected means the remote service refused the stored token.
	ErrAuthRejected = errors.New("session: authentication rejected")
)

// IsAuthFailure reports whether err is one of the expected authentication
// failures that call for a new login rather than a crash.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrCredentialsMissing) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrAuthRejected)
}

// Token is the stored OAuth2 token.
type Token struct {
	TokenType             string `json:"token_type"`
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	ExpiresAt             int64  `json:"expires_at"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}

// Expired reports whether the access token is past its expiry at now. A zero
// expiry never expires.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt > 0 && now.Unix() >= t.ExpiresAt
}

// Provider authenticates against the Connect API using a stored token.
type Provider struct {
	TokenStore       string       // Directory holding oauth2_token.json, or an inline base64 blob.
	TokenStoreBase64 string       // File holding a base64 token blob.
	BaseURL          string       // Connect API base URL; empty uses the default.
	HTTPClient       *http.Client // Optional HTTP client.
	Now              func() time.Time
}

// Authenticate loads the stored token, builds a client, and loads the user's
// profile with it. Expected failures wrap ErrCredentialsMissing,
// ErrSessionExpired, or ErrAuthRejected.
func (p *Provider) Authenticate(ctx context.Context) (*garmin.API, error) {
	tok, err := p.LoadToken()
	if err != nil {
		return nil, err
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	if tok.Expired(now()) {
		return nil, fmt.Errorf("%w: access token expired at %s", ErrSessionExpired,
			time.Unix(tok.ExpiresAt, 0).UTC().Format(time.RFC3339))
	}

	api := garmin.New(p.BaseURL, tok.AccessToken, p.HTTPClient)
	if tok.TokenType != "" {
		api.Auth.Scheme = tok.TokenType
	}

	if _, err := api.LoadProfile(ctx); err != nil {
		if errors.Is(err, garmin.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %w", ErrAuthRejected, err)
		}
		return nil, fmt.Errorf("session: authenticate: %w", err)
	}

	return api, nil
}

// LoadToken reads the token from the first available source: an inline blob
// in TokenStore, the token file in the TokenStore directory, then the
// TokenStoreBase64 file.
func (p *Provider) LoadToken() (Token, error) {
	if len(p.TokenStore) > inlineThreshold {
		return decodeBlob(p.TokenStore)
	}

	if p.TokenStore != "" {
		data, err := os.ReadFile(filepath.Join(p.TokenStore, TokenFile)) //nolint:gosec // path comes from operator configuration
		switch {
		case err == nil:
			return parseToken(data)
		case !errors.Is(err, os.ErrNotExist):
			return Token{}, fmt.Errorf("session: read token: %w", err)
		}
	}

	if p.TokenStoreBase64 != "" {
		data, err := os.ReadFile(p.TokenStoreBase64) //nolint:gosec // path comes from operator configuration
		switch {
		case err == nil:
			return decodeBlob(string(data))
		case !errors.Is(err, os.ErrNotExist):
			return Token{}, fmt.Errorf("session: read token: %w", err)
		}
	}

	return Token{}, fmt.Errorf("%w: no token in %q or %q", ErrCredentialsMissing, p.TokenStore, p.TokenStoreBase64)
}

// decodeBlob decodes a base64 token dump. The dump is either the OAuth2 token
// object or a two-element array of the OAuth1 and OAuth2 tokens.
func decodeBlob(blob string) (Token, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
	if err != nil {
		return Token{}, fmt.Errorf("%w: invalid base64 token: %w", ErrCredentialsMissing, err)
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return Token{}, fmt.Errorf("%w: token dump has %d entries, want 2", ErrCredentialsMissing, len(pair))
		}
		data = pair[1]
	}

	return parseToken(data)
}

func parseToken(data []byte) (Token, error) {
	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, fmt.Errorf("%w: invalid token: %w", ErrCredentialsMissing, err)
	}
	if tok.AccessToken == "" {
		return Token{}, fmt.Errorf("%w: token has no access_token", ErrCredentialsMissing)
	}
	return tok, nil
}
