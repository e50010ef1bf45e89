package garmin

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"macrolog/pkg/logging"
)

// tokenExpiryMargin is the margin applied when checking token expiration.
// This accounts for clock skew between systems and network latency.
const tokenExpiryMargin = 30 * time.Second

// OAuth2Token mirrors the token file written by garth-compatible login
// tools. Expiry timestamps are Unix seconds.
type OAuth2Token struct {
	Scope                 string `json:"scope"`
	JTI                   string `json:"jti"`
	TokenType             string `json:"token_type"`
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	ExpiresIn             int64  `json:"expires_in"`
	ExpiresAt             int64  `json:"expires_at"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}

// Expiry returns the access token expiration as a time.Time.
// The zero time means the file carried no expiry and the token is
// treated as non-expiring.
func (t *OAuth2Token) Expiry() time.Time {
	if t.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(t.ExpiresAt, 0)
}

// FileTokenSource implements oauth2.TokenSource on top of a token file
// maintained by an external login flow. The file is re-read whenever the
// cached token is missing or expired, so a login or refresh performed out
// of process is picked up without restarting.
//
// Concurrent reloads are deduplicated with singleflight so that many
// in-flight API calls trigger at most one file read.
type FileTokenSource struct {
	path string

	mu     sync.RWMutex
	cached *oauth2.Token

	// singleflight group to deduplicate concurrent reloads
	reloadGroup singleflight.Group
}

// NewFileTokenSource creates a token source backed by the given file.
func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path}
}

// Token returns a valid access token, re-reading the token file if the
// cached one is missing or about to expire. It implements
// oauth2.TokenSource.
func (s *FileTokenSource) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()

	if tokenUsable(cached) {
		return cached, nil
	}

	// Use singleflight to deduplicate concurrent reloads
	result, err, _ := s.reloadGroup.Do("reload", func() (interface{}, error) {
		// Double-check cache after acquiring the singleflight lock
		s.mu.RLock()
		cached := s.cached
		s.mu.RUnlock()
		if tokenUsable(cached) {
			return cached, nil
		}

		return s.reload()
	})
	if err != nil {
		return nil, err
	}

	return result.(*oauth2.Token), nil
}

// Invalidate drops the cached token so the next Token call re-reads the
// file. The token file watcher calls this when the file changes.
func (s *FileTokenSource) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	logging.Debug("Garmin", "Token cache invalidated for %s", s.path)
}

// reload reads and validates the token file, updating the cache.
func (s *FileTokenSource) reload() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", s.path, err)
	}

	var stored OAuth2Token
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", s.path, err)
	}

	if stored.AccessToken == "" {
		return nil, fmt.Errorf("token file %s has no access token, run a login to create one", s.path)
	}

	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		TokenType:    stored.TokenType,
		RefreshToken: stored.RefreshToken,
		Expiry:       stored.Expiry(),
	}

	if !tokenUsable(token) {
		return nil, fmt.Errorf("access token in %s expired at %s, run a login to refresh it",
			s.path, token.Expiry.Format(time.RFC3339))
	}

	s.mu.Lock()
	s.cached = token
	s.mu.Unlock()

	logging.Debug("Garmin", "Loaded access token from %s (expires: %v)", s.path, token.Expiry)
	return token, nil
}

// tokenUsable reports whether a token exists and will outlive the expiry
// margin. A zero expiry means the token does not expire.
func tokenUsable(t *oauth2.Token) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	if t.Expiry.IsZero() {
		return true
	}
	return time.Until(t.Expiry) > tokenExpiryMargin
}

// StaticTokenSource returns a token source that always yields the given
// access token. It is intended for tests and one-off scripting.
func StaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}
