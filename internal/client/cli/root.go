package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	sess := a.session.Current()
	if !sess.IsLoggedIn {
		return ""
	}
	s := sess.User.Email
	if sess.IsAdmin {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root runs the interactive command loop until EOF or "exit".
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to cityreport CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "cityreport %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		if done := a.dispatch(ctx, parts[0], parts[1:]); done {
			return
		}
	}
}

// dispatch executes one command. It returns true when the loop should end.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	var err error

	switch cmd {
	case "help":
		a.printHelp()
	case "register":
		err = a.Register(ctx)
	case "login":
		err = a.Login(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "whoami":
		err = a.WhoAmI(ctx)
	case "verify":
		if len(args) != 1 {
			err = fmt.Errorf("usage: verify <token>")
			break
		}
		err = a.VerifyEmail(ctx, args[0])
	case "forgot":
		err = a.ForgotPassword(ctx)
	case "reset":
		if len(args) != 1 {
			err = fmt.Errorf("usage: reset <token>")
			break
		}
		err = a.ResetPassword(ctx, args[0])

	case "reports":
		err = a.ListReports(ctx, args)
	case "report":
		err = a.SubmitReport(ctx)
	case "show":
		if len(args) != 1 {
			err = fmt.Errorf("usage: show <id>")
			break
		}
		err = a.ShowReport(ctx, args[0])

	case "rewards":
		err = a.ListProducts(ctx)
	case "redeem":
		if len(args) != 1 {
			err = fmt.Errorf("usage: redeem <id>")
			break
		}
		err = a.Redeem(ctx, args[0])
	case "redemptions":
		err = a.ListRedemptions(ctx)
	case "points":
		err = a.ShowPoints(ctx)

	case "users":
		err = a.adminOnly(func() error { return a.ListUsers(ctx) })
	case "role":
		if len(args) != 2 {
			err = fmt.Errorf("usage: role <id> <citizen|admin>")
			break
		}
		err = a.adminOnly(func() error { return a.SetUserRole(ctx, args[0], args[1]) })
	case "verify-user":
		if len(args) != 1 {
			err = fmt.Errorf("usage: verify-user <id>")
			break
		}
		err = a.adminOnly(func() error { return a.VerifyUser(ctx, args[0]) })
	case "status":
		if len(args) != 2 {
			err = fmt.Errorf("usage: status <id> <status>")
			break
		}
		err = a.adminOnly(func() error { return a.SetReportStatus(ctx, args[0], args[1]) })
	case "stats":
		err = a.adminOnly(func() error { return a.ShowStats(ctx) })

	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}

	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
	return false
}

func (a *App) adminOnly(fn func() error) error {
	if !a.session.Current().IsAdmin {
		return fmt.Errorf("admin only")
	}
	return fn()
}

func (a *App) printHelp() {
	if a.session.Current().IsLoggedIn {
		fmt.Fprintln(a.out, "Commands: whoami, reports [status=... category=...], report, show <id>,")
		fmt.Fprintln(a.out, "          rewards, redeem <id>, redemptions, points, verify <token>, logout, exit")
		if a.session.Current().IsAdmin {
			fmt.Fprintln(a.out, "Admin:    users, role <id> <role>, verify-user <id>, status <id> <status>, stats")
		}
	} else {
		fmt.Fprintln(a.out, "Commands: register, login, verify <token>, forgot, reset <token>, exit")
	}
}
