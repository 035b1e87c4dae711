package cli

import (
	"context"
	"fmt"

	"github.com/agrismart/agrismart-cli/internal/client/api"
	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the signup fields, confirms the password locally, and
// creates the account. A password mismatch is caught before any network call.
// On success the returned credential opens a session immediately, the way the
// signup page logged the user straight in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, a.tr("enter_name"), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, a.tr("enter_email"), a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.tr("enter_password"), a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.tr("confirm_password"), a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, a.tr("passwords_mismatch"))
		return common.ErrValidation
	}

	resp, err := a.backend.Register(ctx, api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Language: a.prefs.Language(),
	})
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	if err := a.session.Login(ctx, resp.User, resp.AccessToken); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.tr("register_success"))
	a.route = guard.RouteDashboard
	return nil
}

// Login prompts for credentials and opens a session on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, a.tr("enter_email"), a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.tr("enter_password"), a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.backend.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	if err := a.session.Login(ctx, resp.User, resp.AccessToken); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.tr("login_success"))
	a.route = guard.RouteDashboard
	return nil
}

// Logout closes the session and leaves any active chat room.
func (a *App) Logout(ctx context.Context) error {
	if a.chat.Room() != "" {
		_ = a.chat.Deactivate(ctx)
	}
	a.session.Logout(ctx)
	a.route = guard.RouteLanding
	fmt.Fprintln(a.out, a.tr("logged_out"))
	return nil
}
