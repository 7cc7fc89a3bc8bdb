// Package garmin is a thin JSON client for the Garmin Connect API.
//
// [API] exposes one method per remote query or mutation used by the tool
// modules. Every method returns the raw JSON payload (nil for an empty body)
// or an error; callers decide how to shape or summarize the data. The client
// performs no caching and no retries: a failed call surfaces immediately as
// a [*RemoteError], a [*RateLimitError], or a transport error.
//
// Authentication is handled elsewhere (see package session); API only carries
// an OAuth2 access token and the profile identity loaded by [API.LoadProfile].
package garmin
