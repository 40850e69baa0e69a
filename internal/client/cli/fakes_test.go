package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/avetikov/cityreport/internal/client/models"
	"github.com/avetikov/cityreport/internal/client/services"
	"github.com/avetikov/cityreport/internal/logging"
)

// stubInputs replaces the interactive input seams. Each prompt pops the
// next queued answer; the password stub always returns pw.
func stubInputs(t *testing.T, answers []string, pw []byte) {
	t.Helper()
	origST, origGP, origGM := getSimpleText, getPassword, getMultiline

	i := 0
	next := func() string {
		if i >= len(answers) {
			return ""
		}
		v := answers[i]
		i++
		return v
	}

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), pw...), nil }

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origGM
	})
}

type fakeSession struct {
	current services.Session

	loginEmail    string
	loginPassword string
	loginErr      error

	registerReq      models.RegisterRequest
	registerLoggedIn bool
	registerErr      error

	logoutCalled  bool
	restoreCalled bool
	restoreErr    error
}

func (f *fakeSession) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr == nil {
		f.current = services.Session{
			User:       &models.User{ID: "u1", FirstName: "Ada", Email: email},
			IsLoggedIn: true,
		}
	}
	return f.loginErr
}

func (f *fakeSession) Register(_ context.Context, req models.RegisterRequest) (bool, error) {
	f.registerReq = req
	return f.registerLoggedIn, f.registerErr
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalled = true
	f.current = services.Session{}
}

func (f *fakeSession) Restore(context.Context) error {
	f.restoreCalled = true
	return f.restoreErr
}

func (f *fakeSession) Current() services.Session { return f.current }

type fakeAPI struct {
	reports     []models.Report
	reportsErr  error
	lastFilter  models.ReportFilter
	created     *models.Report
	createdReq  models.NewReport
	verifyMsg   string
	verifyToken string
}

func (f *fakeAPI) Login(context.Context, string, string) (*models.AuthPayload, error) {
	return nil, nil
}
func (f *fakeAPI) Register(context.Context, models.RegisterRequest) (*models.AuthPayload, error) {
	return nil, nil
}
func (f *fakeAPI) Logout(context.Context, string) error { return nil }
func (f *fakeAPI) VerifyEmail(_ context.Context, token string) (string, error) {
	f.verifyToken = token
	return f.verifyMsg, nil
}
func (f *fakeAPI) ForgotPassword(context.Context, string) (string, error) { return "sent", nil }
func (f *fakeAPI) ResetPassword(context.Context, string, string) (string, error) {
	return "done", nil
}
func (f *fakeAPI) Profile(context.Context) (*models.User, error) { return nil, nil }
func (f *fakeAPI) ListReports(_ context.Context, filter models.ReportFilter) ([]models.Report, error) {
	f.lastFilter = filter
	return f.reports, f.reportsErr
}
func (f *fakeAPI) GetReport(context.Context, string) (*models.Report, error) { return nil, nil }
func (f *fakeAPI) CreateReport(_ context.Context, req models.NewReport) (*models.Report, error) {
	f.createdReq = req
	return f.created, nil
}
func (f *fakeAPI) UpdateReportStatus(context.Context, string, models.ReportStatus) (*models.Report, error) {
	return nil, nil
}
func (f *fakeAPI) ListUsers(context.Context) ([]models.User, error) { return nil, nil }
func (f *fakeAPI) UpdateUserRole(context.Context, string, models.Role) (*models.User, error) {
	return nil, nil
}
func (f *fakeAPI) VerifyUser(context.Context, string) (*models.User, error) { return nil, nil }
func (f *fakeAPI) Stats(context.Context) (*models.Stats, error)             { return nil, nil }
func (f *fakeAPI) ListProducts(context.Context) ([]models.Product, error)   { return nil, nil }
func (f *fakeAPI) RedeemProduct(context.Context, string) (*models.Redemption, error) {
	return nil, nil
}
func (f *fakeAPI) ListRedemptions(context.Context) ([]models.Redemption, error) { return nil, nil }
func (f *fakeAPI) SetAuthFailureHandler(func())                                 {}
func (f *fakeAPI) Close() error                                                 { return nil }

func newTestApp(session *fakeSession, client *fakeAPI) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		session: session,
		client:  client,
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     out,
		log:     logging.Nop(),
	}, out
}
