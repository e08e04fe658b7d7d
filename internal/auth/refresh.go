package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/aluqhof/stridelab/internal/logging"
	"github.com/aluqhof/stridelab/internal/store"
)

// expiryBuffer refreshes tokens slightly before Strava rejects them
const expiryBuffer = 60 * time.Second

var log = logging.Component("auth")

// TokenStore persists OAuth tokens between runs
type TokenStore interface {
	GetAuth() (*store.Auth, error)
	SaveAuth(*store.Auth) error
	UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error
}

// TokenSource wraps an oauth2 refresh with persistence.
// onRefresh is called with every newly minted token.
type TokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	onRefresh func(*oauth2.Token) error
	mu        sync.Mutex
}

// NewTokenSource creates a TokenSource that refreshes tokens as needed
func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, onRefresh func(*oauth2.Token) error) *TokenSource {
	return &TokenSource{
		config:    cfg,
		token:     token,
		onRefresh: onRefresh,
	}
}

// NewStoredTokenSource loads the saved token and persists refreshed ones
// back into ts. Returns store.ErrNoAuth when nothing is saved.
func NewStoredTokenSource(cfg *oauth2.Config, ts TokenStore) (*TokenSource, error) {
	a, err := ts.GetAuth()
	if err != nil {
		return nil, err
	}
	return NewTokenSource(cfg, TokenFromAuth(a), func(t *oauth2.Token) error {
		if err := ts.UpdateTokens(t.AccessToken, t.RefreshToken, t.Expiry); err != nil {
			return fmt.Errorf("saving refreshed token: %w", err)
		}
		log.WithField("expires", t.Expiry).Debug("token refreshed")
		return nil
	}), nil
}

// TokenFromAuth converts stored credentials to an oauth2 token
func TokenFromAuth(a *store.Auth) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       a.ExpiresAt,
	}
}

// Token returns a valid token, refreshing if necessary
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > expiryBuffer {
		return ts.token, nil
	}

	// Force a refresh even though the oauth2 package still considers it valid
	stale := *ts.token
	stale.Expiry = time.Now().Add(-time.Second)
	newToken, err := ts.config.TokenSource(context.Background(), &stale).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}

	if ts.onRefresh != nil {
		if err := ts.onRefresh(newToken); err != nil {
			return nil, err
		}
	}

	ts.token = newToken
	return newToken, nil
}

// IsExpired checks if the current token is expired or will expire within the buffer
func (ts *TokenSource) IsExpired() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return time.Until(ts.token.Expiry) <= expiryBuffer
}

// CurrentToken returns the current token without refreshing
func (ts *TokenSource) CurrentToken() *oauth2.Token {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.token
}
