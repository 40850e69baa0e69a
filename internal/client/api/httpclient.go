package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avetikov/cityreport/internal/client/models"
	"github.com/avetikov/cityreport/internal/client/tokenstore"
	"github.com/avetikov/cityreport/internal/logging"
)

// HTTPClient talks JSON over HTTP to the cityreport backend.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	transport *authTransport
	log       logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client rooted at baseURL. All calls share one
// fixed timeout; a timeout surfaces as ErrUnavailable and never triggers
// the refresh path.
func NewHTTPClient(baseURL string, timeout time.Duration, store tokenstore.Store, log logging.Logger) *HTTPClient {
	baseURL = strings.TrimRight(baseURL, "/")
	transport := newAuthTransport(store, baseURL+"/auth/refresh-token", timeout, log)
	return &HTTPClient{
		baseURL:   baseURL,
		transport: transport,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

func (c *HTTPClient) SetAuthFailureHandler(fn func()) {
	c.transport.setAuthFailureHandler(fn)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	c.transport.refresh.CloseIdleConnections()
	return nil
}

// do executes one call and always comes back with an envelope; request
// construction problems and transport failures land in the envelope's
// error just like backend-signaled ones.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) Envelope {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Normalize(0, nil, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Normalize(0, nil, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Normalize(0, nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Normalize(resp.StatusCode, nil, err)
	}
	return Normalize(resp.StatusCode, raw, nil)
}

// Login authenticates and returns the decoded tokens+user payload. A body
// the backend marked successful but that lacks tokens or a user fails with
// ErrMalformedPayload.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	env := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	return DecodeAuthPayload(env.Data)
}

// Register creates an account. When the backend embeds tokens and a user
// in the response (auto-login), the decoded payload is returned; otherwise
// the payload is nil and the caller should route to login.
func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error) {
	env := c.do(ctx, http.MethodPost, "/auth/register", req)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	payload, err := DecodeAuthPayload(env.Data)
	if err != nil {
		return nil, nil
	}
	return payload, nil
}

// Logout invalidates the refresh token server-side.
func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	env := c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{
		"refreshToken": refreshToken,
	})
	return envelopeError(env)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token string) (string, error) {
	env := c.do(ctx, http.MethodGet, "/auth/verify-email/"+url.PathEscape(token), nil)
	if err := envelopeError(env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	env := c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email})
	if err := envelopeError(env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, password string) (string, error) {
	env := c.do(ctx, http.MethodPost, "/auth/reset-password/"+url.PathEscape(token), map[string]string{
		"password": password,
	})
	if err := envelopeError(env); err != nil {
		return "", err
	}
	return env.Message, nil
}

// Profile fetches the authenticated user's record; it backs session
// restoration on startup.
func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	env := c.do(ctx, http.MethodGet, "/users/profile", nil)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	return DecodeUser(env.Data)
}

func (c *HTTPClient) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	path := "/reports"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	env := c.do(ctx, http.MethodGet, path, nil)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	var payload struct {
		Reports []models.Report `json:"reports"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	return payload.Reports, nil
}

func (c *HTTPClient) GetReport(ctx context.Context, id string) (*models.Report, error) {
	env := c.do(ctx, http.MethodGet, "/reports/"+url.PathEscape(id), nil)
	return decodeReport(env)
}

func (c *HTTPClient) CreateReport(ctx context.Context, req models.NewReport) (*models.Report, error) {
	env := c.do(ctx, http.MethodPost, "/reports", req)
	return decodeReport(env)
}

func (c *HTTPClient) UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error) {
	env := c.do(ctx, http.MethodPatch, "/admin/reports/"+url.PathEscape(id)+"/status", map[string]string{
		"status": string(status),
	})
	return decodeReport(env)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	env := c.do(ctx, http.MethodGet, "/admin/users", nil)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	var payload struct {
		Users []models.User `json:"users"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	return payload.Users, nil
}

func (c *HTTPClient) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	env := c.do(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/role", map[string]string{
		"role": string(role),
	})
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	return DecodeUser(env.Data)
}

func (c *HTTPClient) VerifyUser(ctx context.Context, id string) (*models.User, error) {
	env := c.do(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/verify", nil)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	return DecodeUser(env.Data)
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	env := c.do(ctx, http.MethodGet, "/admin/stats", nil)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	var stats models.Stats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	return &stats, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	env := c.do(ctx, http.MethodGet, "/products", nil)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	var payload struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	return payload.Products, nil
}

func (c *HTTPClient) RedeemProduct(ctx context.Context, productID string) (*models.Redemption, error) {
	env := c.do(ctx, http.MethodPost, "/redemptions", map[string]string{"productId": productID})
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	var payload struct {
		Redemption *models.Redemption `json:"redemption"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil || payload.Redemption == nil {
		return nil, fmt.Errorf("%w: missing redemption", ErrMalformedPayload)
	}
	return payload.Redemption, nil
}

func (c *HTTPClient) ListRedemptions(ctx context.Context) ([]models.Redemption, error) {
	env := c.do(ctx, http.MethodGet, "/redemptions", nil)
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	var payload struct {
		Redemptions []models.Redemption `json:"redemptions"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	return payload.Redemptions, nil
}

func decodeReport(env Envelope) (*models.Report, error) {
	if err := envelopeError(env); err != nil {
		return nil, err
	}
	var payload struct {
		Report *models.Report `json:"report"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil || payload.Report == nil {
		return nil, fmt.Errorf("%w: missing report", ErrMalformedPayload)
	}
	return payload.Report, nil
}
