package api

import (
	"context"

	"github.com/avetikov/cityreport/internal/client/models"
)

// Client is the typed surface of the cityreport backend. Every method goes
// through the request pipeline (bearer attachment, refresh-and-retry) and
// the response normalizer; errors are drawn from the taxonomy in errors.go.
type Client interface {
	// Auth.
	Login(ctx context.Context, email, password string) (*models.AuthPayload, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
	Profile(ctx context.Context) (*models.User, error)

	// Reports.
	ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	CreateReport(ctx context.Context, req models.NewReport) (*models.Report, error)

	// Admin triage.
	UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	VerifyUser(ctx context.Context, id string) (*models.User, error)
	Stats(ctx context.Context) (*models.Stats, error)

	// Rewards.
	ListProducts(ctx context.Context) ([]models.Product, error)
	RedeemProduct(ctx context.Context, productID string) (*models.Redemption, error)
	ListRedemptions(ctx context.Context) ([]models.Redemption, error)

	// SetAuthFailureHandler registers the hook fired when the refresh
	// path is exhausted and the session must transition to logged out.
	SetAuthFailureHandler(fn func())

	Close() error
}
