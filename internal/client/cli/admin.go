package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/avetikov/cityreport/internal/client/models"
)

// SetReportStatus moves a report to a new triage status (admin only).
func (a *App) SetReportStatus(ctx context.Context, id string, status string) error {
	s := models.ReportStatus(status)
	if !models.ValidReportStatus(s) {
		return fmt.Errorf("unknown status %q (want pending, in_progress, resolved or rejected)", status)
	}

	r, err := a.client.UpdateReportStatus(ctx, id, s)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Report %s is now %s.\n", r.ID, r.Status)
	return nil
}

// ListUsers prints all accounts (admin only).
func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		verified := " "
		if u.IsVerified {
			verified = "v"
		}
		fmt.Fprintf(a.out, "%s  [%s] %-7s  %-24s  %d pts\n", u.ID, verified, u.Role, u.Email, u.Points)
	}
	return nil
}

// SetUserRole changes an account's role (admin only).
func (a *App) SetUserRole(ctx context.Context, id string, role string) error {
	r := models.Role(role)
	if r != models.RoleCitizen && r != models.RoleAdmin {
		return fmt.Errorf("unknown role %q (want citizen or admin)", role)
	}

	u, err := a.client.UpdateUserRole(ctx, id, r)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s is now %s.\n", u.Email, u.Role)
	return nil
}

// VerifyUser marks an account as verified (admin only).
func (a *App) VerifyUser(ctx context.Context, id string) error {
	u, err := a.client.VerifyUser(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s verified.\n", u.Email)
	return nil
}

// ShowStats prints the dashboard aggregates (admin only).
func (a *App) ShowStats(ctx context.Context) error {
	stats, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "total reports: %d\n", stats.Total)
	printCounts(a, "by status", stats.ByStatus)
	printCounts(a, "by category", stats.ByCategory)
	return nil
}

func printCounts(a *App, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(a.out, "%s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %-12s %d\n", k, counts[k])
	}
}
