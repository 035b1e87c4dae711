package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Weather(ctx context.Context, location string) error
	Detect(ctx context.Context, path string) error
	History(ctx context.Context) error
	Market(ctx context.Context, category string) error
	Sell(ctx context.Context) error
	Tips(ctx context.Context) error
	Schemes(ctx context.Context) error
	Forum(ctx context.Context) error
	Post(ctx context.Context) error
	Comments(ctx context.Context, id string) error
	Ask(ctx context.Context, question string) error
	AIHistory(ctx context.Context) error
	Speak(ctx context.Context, text string) error
	Chat(ctx context.Context, room string) error
	Lang(ctx context.Context, lang string) error
	Theme(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
}

// runREPL starts a read-eval-print loop over the AgriSmart views.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("agrismart %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		first := func() string {
			if len(args) > 0 {
				return args[0]
			}
			return ""
		}
		rest := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Views: dashboard, weather [city], detect <image>, history, market [category], sell, tips, schemes, forum, post, comments <id>, ask [question], aihistory, speak <text>, chat [room], profile, update")
				printlnFn("Other: lang <en|hi>, theme, logout, exit")
			} else {
				printlnFn("Available commands: register, login, lang <en|hi>, theme, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "dashboard", "home":
			_ = a.Dashboard(ctx)

		case "weather":
			_ = a.Weather(ctx, first())

		case "detect":
			_ = a.Detect(ctx, first())

		case "history":
			_ = a.History(ctx)

		case "market":
			_ = a.Market(ctx, first())

		case "sell":
			_ = a.Sell(ctx)

		case "tips":
			_ = a.Tips(ctx)

		case "schemes":
			_ = a.Schemes(ctx)

		case "forum":
			_ = a.Forum(ctx)

		case "post":
			_ = a.Post(ctx)

		case "comments":
			_ = a.Comments(ctx, first())

		case "ask":
			_ = a.Ask(ctx, rest)

		case "aihistory":
			_ = a.AIHistory(ctx)

		case "speak":
			_ = a.Speak(ctx, rest)

		case "chat", "connect":
			_ = a.Chat(ctx, first())

		case "lang":
			_ = a.Lang(ctx, first())

		case "theme":
			_ = a.Theme(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
