package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avetikov/cityreport/internal/client/models"
	"github.com/avetikov/cityreport/internal/client/tokenstore"
	"github.com/avetikov/cityreport/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *tokenstore.InMemory) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := tokenstore.NewInMemory()
	c := NewHTTPClient(server.URL, 5*time.Second, store, logging.Nop())
	t.Cleanup(func() { c.Close() })
	return c, store
}

func TestLogin_DecodesPayload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ada@example.org", creds["email"])

		writeJSON(w, http.StatusOK, `{"success":true,"data":{"tokens":{"accessToken":"a1","refreshToken":"r1"},"user":{"id":"u1","role":"citizen"}}}`)
	}))

	p, err := c.Login(context.Background(), "ada@example.org", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a1", p.Tokens.AccessToken)
	assert.Equal(t, models.RoleCitizen, p.User.Role)
}

// Backend success without tokens is demoted to a failure.
func TestLogin_SuccessWithoutTokensFails(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"user":{"id":"u1"}}}`)
	}))

	_, err := c.Login(context.Background(), "ada@example.org", "secret")
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestLogin_ValidationErrorCarriesDetails(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success":false,"message":"invalid credentials","errors":{"password":"required"}}`)
	}))

	_, err := c.Login(context.Background(), "ada@example.org", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.JSONEq(t, `{"password":"required"}`, string(apiErr.Details))
}

func TestRegister_AutoLogin(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"status":"success","data":{"accessToken":"a1","refreshToken":"r1","user":{"id":"u1"}}}`)
	}))

	p, err := c.Register(context.Background(), models.RegisterRequest{Email: "ada@example.org"})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "a1", p.Tokens.AccessToken)
}

func TestRegister_WithoutTokensRoutesToLogin(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"status":"success","message":"account created, please verify your email"}`)
	}))

	p, err := c.Register(context.Background(), models.RegisterRequest{Email: "ada@example.org"})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfile_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"message":"jwt expired"}`)
	}))

	_, err := c.Profile(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestProfile_TransportErrorIsUnavailable(t *testing.T) {
	store := tokenstore.NewInMemory()
	c := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond, store, logging.Nop())
	defer c.Close()

	_, err := c.Profile(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestListReports_FilterBecomesQuery(t *testing.T) {
	var gotQuery map[string][]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports", r.URL.Path)
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"reports":[{"id":"rep1","status":"pending"}]}}`)
	}))

	reports, err := c.ListReports(context.Background(), models.ReportFilter{
		Status:   models.StatusPending,
		Category: "pothole",
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "rep1", reports[0].ID)
	assert.Equal(t, []string{"pending"}, gotQuery["status"])
	assert.Equal(t, []string{"pothole"}, gotQuery["category"])
}

func TestCreateReport(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req models.NewReport
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "broken streetlight", req.Title)

		writeJSON(w, http.StatusCreated, `{"status":"success","data":{"report":{"id":"rep2","title":"broken streetlight","status":"pending"}}}`)
	}))

	rep, err := c.CreateReport(context.Background(), models.NewReport{
		Title:     "broken streetlight",
		Category:  "lighting",
		Latitude:  41.1,
		Longitude: 2.05,
	})
	require.NoError(t, err)
	assert.Equal(t, "rep2", rep.ID)
	assert.Equal(t, models.StatusPending, rep.Status)
}

func TestUpdateReportStatus_Path(t *testing.T) {
	var gotPath, gotMethod string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"report":{"id":"rep1","status":"resolved"}}}`)
	}))

	rep, err := c.UpdateReportStatus(context.Background(), "rep1", models.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, rep.Status)
	assert.Equal(t, "/admin/reports/rep1/status", gotPath)
	assert.Equal(t, http.MethodPatch, gotMethod)
}

func TestUpdateUserRole(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users/u2/role", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"user":{"id":"u2","role":"admin"}}}`)
	}))

	u, err := c.UpdateUserRole(context.Background(), "u2", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestRedeemProduct(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/redemptions", r.URL.Path)
		writeJSON(w, http.StatusCreated, `{"status":"success","data":{"redemption":{"id":"red1","productId":"p1","status":"pending"}}}`)
	}))

	red, err := c.RedeemProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "red1", red.ID)
}

func TestStats(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"total":3,"byStatus":{"pending":2,"resolved":1},"byCategory":{"pothole":3}}}`)
	}))

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus["pending"])
}
