package client

import (
	"context"
	"errors"
	"sync"
)

// TokenSource supplies bearer tokens. Refresh is called at most once per
// request, after the API answered 401.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// StaticToken never refreshes; a 401 becomes an Authorization error.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

func (t StaticToken) Refresh(context.Context) (string, error) {
	return "", errors.New("static token cannot be refreshed")
}

// RefreshingToken caches a token and obtains a new one through fetch on refresh.
type RefreshingToken struct {
	mu    sync.Mutex
	token string
	fetch func(ctx context.Context) (string, error)
}

func NewRefreshingToken(fetch func(ctx context.Context) (string, error)) *RefreshingToken {
	return &RefreshingToken{fetch: fetch}
}

func (t *RefreshingToken) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.token != "" {
		return t.token, nil
	}
	return t.refreshLocked(ctx)
}

func (t *RefreshingToken) Refresh(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refreshLocked(ctx)
}

func (t *RefreshingToken) refreshLocked(ctx context.Context) (string, error) {
	token, err := t.fetch(ctx)
	if err != nil {
		return "", err
	}
	t.token = token
	return token, nil
}
