package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrismart/agrismart-cli/internal/common"
)

// Lang switches the interface language. Unsupported codes are rejected and
// the current language stays in effect.
func (a *App) Lang(ctx context.Context, lang string) error {
	if lang == "" {
		fmt.Fprintf(a.out, "Current language: %s. Usage: lang <en|hi>\n", a.prefs.Language())
		return nil
	}
	if err := a.prefs.SetLanguage(ctx, lang); err != nil {
		if errors.Is(err, common.ErrUnsupportedLanguage) {
			fmt.Fprintf(a.out, "Unsupported language %q, keeping %s.\n", lang, a.prefs.Language())
		}
		return err
	}
	fmt.Fprintln(a.out, a.tr("welcome"))
	return nil
}

// Theme toggles dark mode.
func (a *App) Theme(ctx context.Context) error {
	a.prefs.ToggleTheme(ctx)
	if a.prefs.DarkMode() {
		fmt.Fprintln(a.out, "Dark mode on.")
	} else {
		fmt.Fprintln(a.out, "Dark mode off.")
	}
	return nil
}
