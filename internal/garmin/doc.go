// Package garmin provides a typed REST client for the Garmin Connect
// nutrition API.
//
// # Overview
//
// The Connect nutrition service exposes meal definitions, daily food logs,
// nutrition settings, the food database (search, recent, favorites, custom
// foods and meals), and the food log itself. This package wraps those
// endpoints with Go types and explicit methods; it performs no caching,
// batching, or retries, so every method call is a single HTTP request.
//
// Responses are decoded into pointer-heavy structs so that fields absent
// from a response stay distinguishable from zero values. Consumers that
// shape responses for presentation rely on that distinction.
//
// # Authentication
//
// Requests authenticate with an OAuth2 bearer token. The default token
// source, FileTokenSource, reads a token file written by an external
// garth-compatible login flow and caches the parsed token until it is
// invalidated or expires. The client never performs a login itself; when
// the file is missing or stale, calls fail with an error telling the user
// to log in again.
//
// TokenWatcher monitors the token file so long-running servers pick up
// externally refreshed tokens. It uses fsnotify where available, falls
// back to polling, and debounces rapid rewrites. Wiring its OnChange to
// FileTokenSource.Invalidate makes the next request re-read the file:
//
//	src := garmin.NewFileTokenSource(cfg.TokenFile)
//	watcher := garmin.NewTokenWatcher(garmin.TokenWatcherConfig{
//		TokenFile: cfg.TokenFile,
//		OnChange:  src.Invalidate,
//	})
//
// # Errors
//
// Non-2xx responses surface as *APIError carrying the method, path,
// status, and a truncated response body. APIError.IsAuthError reports
// whether the failure looks like an expired or revoked token.
package garmin
