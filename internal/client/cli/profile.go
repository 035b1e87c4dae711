package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/common"
)

// Profile shows the server-side profile, plus the credential expiry when the
// token carries one.
func (a *App) Profile(ctx context.Context) error {
	if !a.visit(guard.RouteProfile) {
		return nil
	}

	user, err := a.backend.Profile(ctx)
	if err != nil {
		return a.reportErr("Could not load profile:", err)
	}

	fmt.Fprintf(a.out, "Name:      %s\n", user.Name)
	fmt.Fprintf(a.out, "Email:     %s\n", user.Email)
	if user.Phone != "" {
		fmt.Fprintf(a.out, "Phone:     %s\n", user.Phone)
	}
	if user.Location != "" {
		fmt.Fprintf(a.out, "Location:  %s\n", user.Location)
	}
	if user.FarmSize > 0 {
		fmt.Fprintf(a.out, "Farm size: %.1f acres\n", user.FarmSize)
	}
	if exp, ok := a.session.ExpiresAt(); ok {
		fmt.Fprintf(a.out, "Session valid until %s\n", exp.Format("2006-01-02 15:04"))
	}
	return nil
}

// UpdateProfile edits profile fields. Empty answers keep the current value;
// the patch is applied server-side first, then mirrored into the session.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.visit(guard.RouteProfile) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone (empty to keep)", a.out)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location (empty to keep)", a.out)
	if err != nil {
		return err
	}
	farmText, err := getSimpleText(a.reader, "Farm size in acres (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if name != "" {
		patch.Name = &name
	}
	if phone != "" {
		patch.Phone = &phone
	}
	if location != "" {
		patch.Location = &location
	}
	if farmText != "" {
		size, err := strconv.ParseFloat(farmText, 64)
		if err != nil || size < 0 {
			fmt.Fprintln(a.out, "Farm size must be a number.")
			return common.ErrValidation
		}
		patch.FarmSize = &size
	}

	if err := a.backend.UpdateProfile(ctx, patch); err != nil {
		return a.reportErr("Could not update profile:", err)
	}
	if err := a.session.UpdateUser(ctx, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
