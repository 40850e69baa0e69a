package cli

import (
	"context"
	"fmt"

	"github.com/avetikov/cityreport/internal/client/models"
	"github.com/avetikov/cityreport/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for the registration form and attempts to create an
// account. When the backend auto-logs the account in, the session is
// live afterwards; otherwise the user is told to verify and log in.
func (a *App) Register(ctx context.Context) error {
	req := models.RegisterRequest{}
	var err error

	if req.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if req.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.NationalID, err = getSimpleText(a.reader, "National ID", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	loggedIn, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}

	if loggedIn {
		fmt.Fprintln(a.out, "Account created, you are logged in.")
	} else {
		fmt.Fprintln(a.out, "Account created. Check your email, then run 'login'.")
	}
	return nil
}

// Login prompts for credentials and authenticates. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	sess := a.session.Current()
	fmt.Fprintf(a.out, "Welcome, %s!\n", sess.User.FullName())
	if !sess.IsVerified {
		fmt.Fprintln(a.out, "Your email is not verified yet; run 'verify <token>'.")
	}
	return nil
}

// Logout signs out. It always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	sess := a.session.Current()
	if !sess.IsLoggedIn {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	u := sess.User
	fmt.Fprintf(a.out, "%s <%s>\nrole: %s  verified: %v  points: %d\n",
		u.FullName(), u.Email, u.Role, u.IsVerified, u.Points)
	return nil
}

// VerifyEmail redeems an email-verification token, then refreshes the
// cached profile so the verified flag is current.
func (a *App) VerifyEmail(ctx context.Context, token string) error {
	msg, err := a.client.VerifyEmail(ctx, token)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Email verified."
	}
	fmt.Fprintln(a.out, msg)

	if a.session.Current().IsLoggedIn {
		return a.session.Restore(ctx)
	}
	return nil
}

// ForgotPassword requests a reset email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	msg, err := a.client.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Reset email sent."
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// ResetPassword sets a new password using a reset token.
func (a *App) ResetPassword(ctx context.Context, token string) error {
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.client.ResetPassword(ctx, token, string(password))
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Password updated."
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
