package cli

import (
	"context"
	"fmt"
)

// ListProducts prints the redeemable rewards catalogue.
func (a *App) ListProducts(ctx context.Context) error {
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No rewards available.")
		return nil
	}

	for _, p := range products {
		fmt.Fprintf(a.out, "%s  %4d pts  (stock %d)  %s\n", p.ID, p.Cost, p.Stock, p.Name)
	}
	return nil
}

// Redeem claims a product by ID and refreshes the cached profile so the
// points balance is current.
func (a *App) Redeem(ctx context.Context, productID string) error {
	red, err := a.client.RedeemProduct(ctx, productID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Redemption %s created (status %s).\n", red.ID, red.Status)
	return a.session.Restore(ctx)
}

// ShowPoints refreshes the cached profile and prints the points balance.
func (a *App) ShowPoints(ctx context.Context) error {
	if !a.session.Current().IsLoggedIn {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err := a.session.Restore(ctx); err != nil {
		return err
	}

	sess := a.session.Current()
	if !sess.IsLoggedIn {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "You have %d points.\n", sess.User.Points)
	return nil
}

// ListRedemptions prints the user's redemption history.
func (a *App) ListRedemptions(ctx context.Context) error {
	redemptions, err := a.client.ListRedemptions(ctx)
	if err != nil {
		return err
	}
	if len(redemptions) == 0 {
		fmt.Fprintln(a.out, "No redemptions yet.")
		return nil
	}

	for _, r := range redemptions {
		fmt.Fprintf(a.out, "%s  product=%s  %s  %s\n", r.ID, r.ProductID, r.Status, r.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
