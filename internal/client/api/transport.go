package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/avetikov/cityreport/internal/client/tokenstore"
	"github.com/avetikov/cityreport/internal/logging"
)

// authTransport is the request pipeline: it attaches the bearer token to
// every outgoing request and owns the 401 handling. A request that comes
// back 401 triggers at most one token refresh followed by exactly one
// retry; a 401 on the retry is passed through untouched.
//
// Refresh coordination: any number of requests can hit 401 while a refresh
// is already in flight. The singleflight group collapses them onto the one
// pending refresh call, so token rotation happens once and every waiter
// retries with the same fresh token.
type authTransport struct {
	base       http.RoundTripper
	store      tokenstore.Store
	refreshURL string
	refresh    *http.Client // plain client: the refresh call must bypass this transport
	group      singleflight.Group
	log        logging.Logger

	mu            sync.Mutex
	onAuthFailure func()
}

func newAuthTransport(store tokenstore.Store, refreshURL string, timeout time.Duration, log logging.Logger) *authTransport {
	return &authTransport{
		base:       http.DefaultTransport,
		store:      store,
		refreshURL: refreshURL,
		refresh:    &http.Client{Timeout: timeout},
		log:        log,
	}
}

// setAuthFailureHandler registers the hook fired when a refresh attempt
// fails and the session must be torn down.
func (t *authTransport) setAuthFailureHandler(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onAuthFailure = fn
}

func (t *authTransport) notifyAuthFailure() {
	t.mu.Lock()
	fn := t.onAuthFailure
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.store.Get(ctx, tokenstore.KeyAccessToken)
	if err != nil {
		return nil, err
	}

	resp, err := t.send(req, token)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// First 401 for this request: refresh once, then retry once. The
	// retried attempt is a fresh clone; nothing is ever flagged on the
	// request itself.
	refreshed, refreshErr := t.refreshTokens(ctx)
	if refreshErr != nil {
		t.log.Warn(ctx, "token refresh failed, propagating 401", "error", refreshErr.Error())
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	t.log.Debug(ctx, "retrying request with refreshed token", "method", req.Method, "url", req.URL.Path)
	return t.send(req, refreshed)
}

// send issues one attempt. The original request is never mutated: each
// attempt works on a clone with its own body, bearer header, and request ID.
func (t *authTransport) send(req *http.Request, token string) (*http.Response, error) {
	attempt := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		attempt.Body = body
	}

	if token != "" {
		attempt.Header.Set("Authorization", "Bearer "+token)
	}
	attempt.Header.Set("X-Request-ID", uuid.NewString())

	return t.base.RoundTrip(attempt)
}

// refreshTokens exchanges the stored refresh token for a new access token.
// Concurrent callers share one in-flight exchange. On any failure both
// token slots are cleared and the auth-failure handler fires.
func (t *authTransport) refreshTokens(ctx context.Context) (string, error) {
	v, err, shared := t.group.Do("refresh", func() (any, error) {
		// Detached from the triggering request: one canceled caller must
		// not abort the refresh the other waiters depend on.
		ctx := context.WithoutCancel(ctx)

		token, err := t.doRefresh(ctx)
		if err != nil {
			t.clearTokens(ctx)
			t.notifyAuthFailure()
			return nil, err
		}
		return token, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		t.log.Debug(ctx, "attached to in-flight token refresh")
	}
	return v.(string), nil
}

func (t *authTransport) doRefresh(ctx context.Context) (string, error) {
	refresh, err := t.store.Get(ctx, tokenstore.KeyRefreshToken)
	if err != nil {
		return "", err
	}
	if refresh == "" {
		return "", fmt.Errorf("%w: no refresh token", ErrUnauthorized)
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": refresh})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.refresh.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	env := Normalize(resp.StatusCode, body, nil)
	if err := envelopeError(env); err != nil {
		return "", err
	}

	pair, err := DecodeTokenPair(env.Data)
	if err != nil {
		return "", err
	}

	if err := t.store.Set(ctx, tokenstore.KeyAccessToken, pair.AccessToken); err != nil {
		return "", err
	}
	if pair.RefreshToken != "" {
		if err := t.store.Set(ctx, tokenstore.KeyRefreshToken, pair.RefreshToken); err != nil {
			return "", err
		}
	}

	t.log.Info(ctx, "access token refreshed", "rotated", pair.RefreshToken != "")
	return pair.AccessToken, nil
}

func (t *authTransport) clearTokens(ctx context.Context) {
	if err := t.store.Clear(ctx, tokenstore.KeyAccessToken); err != nil {
		t.log.Error(ctx, "failed to clear access token", "error", err.Error())
	}
	if err := t.store.Clear(ctx, tokenstore.KeyRefreshToken); err != nil {
		t.log.Error(ctx, "failed to clear refresh token", "error", err.Error())
	}
}
