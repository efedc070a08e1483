package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"daydash/internal/models"
)

// remoteTimeout bounds every remote call this package makes.
const remoteTimeout = 10 * time.Second

// ConsentFunc obtains an authorization code from the user. It is handed the
// consent URL to present and blocks until the user pastes the code back.
type ConsentFunc func(authURL string) (code string, err error)

// LoadClientConfig builds the OAuth config from an explicit client ID and
// secret, falling back to a client-secrets JSON file. When neither is
// available it returns ErrMissingClientConfig so callers can tell the user
// what to set up instead of crashing.
func LoadClientConfig(clientID, clientSecret, credentialsFile string) (*oauth2.Config, error) {
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{calendar.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		}, nil
	}

	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: provide GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET or place %s next to the binary", ErrMissingClientConfig, credentialsFile)
		}
		return nil, fmt.Errorf("read client secret file: %w", err)
	}
	config, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret file: %w", err)
	}
	config.RedirectURL = "urn:ietf:wg:oauth:2.0:oob" // desktop app flow
	return config, nil
}

// Authenticator turns a possibly-absent or expired stored credential into a
// valid one, refreshing when it can and falling back to interactive
// authorization when it must. All state transitions happen under one mutex
// so a reconnect and a periodic refresh cannot interleave.
type Authenticator struct {
	mu      sync.Mutex
	logger  *slog.Logger
	store   *TokenStore
	config  *oauth2.Config // nil when client config is missing
	consent ConsentFunc

	token *oauth2.Token
	valid bool
}

// NewAuthenticator creates an Authenticator. config may be nil (missing
// client configuration); consent may be nil in non-interactive contexts, in
// which case only refresh of an existing credential can succeed.
func NewAuthenticator(logger *slog.Logger, store *TokenStore, config *oauth2.Config, consent ConsentFunc) *Authenticator {
	return &Authenticator{logger: logger, store: store, config: config, consent: consent}
}

// Ensure drives the credential toward a usable state and returns it.
// Once valid, the credential is trusted for the rest of the session; only
// Reconnect resets it.
func (a *Authenticator) Ensure(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.valid {
		return nil
	}

	tok, err := a.store.Load()
	if err != nil {
		a.logger.Warn("Could not read stored token", "error", err)
	}

	if tok != nil && tok.Valid() {
		a.token = tok
		a.valid = true
		return nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := a.refresh(ctx, tok)
		if err == nil {
			if err := a.store.Save(refreshed); err != nil {
				a.logger.Warn("Could not persist refreshed token", "error", err)
			}
			a.token = refreshed
			a.valid = true
			a.logger.Info("Refreshed stored credential")
			return nil
		}
		a.logger.Warn("Token refresh rejected, clearing stored credential", "error", err)
		if err := a.store.Clear(); err != nil {
			a.logger.Warn("Could not clear stored token", "error", err)
		}
	}

	return a.authorize(ctx)
}

// refresh exchanges the refresh token for a new access token.
func (a *Authenticator) refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	if a.config == nil {
		return nil, ErrMissingClientConfig
	}
	rctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	refreshed, err := a.config.TokenSource(rctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthRefreshFailed, err)
	}
	return refreshed, nil
}

// authorize runs the interactive consent flow and persists the result.
// Caller must hold a.mu.
func (a *Authenticator) authorize(ctx context.Context) error {
	if a.config == nil {
		return ErrMissingClientConfig
	}
	if a.consent == nil {
		return fmt.Errorf("interactive authorization required but no consent prompt is available; run the auth command")
	}

	authURL := a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	code, err := a.consent(authURL)
	if err != nil {
		return fmt.Errorf("authorization consent: %w", err)
	}

	ectx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	tok, err := a.config.Exchange(ectx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	if err := a.store.Save(tok); err != nil {
		a.logger.Warn("Could not persist new token", "error", err)
	}
	a.token = tok
	a.valid = true
	a.logger.Info("Authorized new credential")
	return nil
}

// State reports what the UI collaborator is allowed to observe.
func (a *Authenticator) State() models.AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.valid {
		return models.Authenticated
	}
	return models.Unauthenticated
}

// Reconnect drops the session credential and the stored one in a single
// step so no concurrent fetch can see a half-cleared state.
func (a *Authenticator) Reconnect() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = nil
	a.valid = false
	return a.store.Clear()
}

// HTTPClient returns an authorized HTTP client with a bounded timeout, or
// nil when the session is not authenticated.
func (a *Authenticator) HTTPClient(ctx context.Context) *http.Client {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.valid {
		return nil
	}
	var client *http.Client
	if a.config != nil {
		client = a.config.Client(ctx, a.token)
	} else {
		// Valid token on disk but no client config: usable until expiry.
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(a.token))
	}
	client.Timeout = remoteTimeout
	return client
}
