package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus renders the prompt decoration: the user's name when logged in
// and the active language.
func (a *App) getStatus() string {
	s := ""
	if u, ok := a.session.User(); ok {
		s = u.Name + " "
	}
	s += a.prefs.Language()
	return fmt.Sprintf("(%s)", s)
}

// Root greets and hands control to the REPL.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, a.tr("welcome"))
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
