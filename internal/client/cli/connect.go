package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/common"
)

// rooms are the community channels, matching the web client's sidebar.
var rooms = []string{"general", "wheat", "rice", "vegetables", "organic"}

func validRoom(room string) bool {
	for _, r := range rooms {
		if r == room {
			return true
		}
	}
	return false
}

// Chat joins a community room and enters a nested message loop. Inside the
// loop every plain line is sent to the room; commands start with '/':
//
//	/rooms          list rooms
//	/switch <room>  move to another room (leaves the current one first)
//	/who            show who is typing
//	/quit           leave the room and return to the main prompt
//
// Incoming messages print as they arrive via the subscriber callback.
func (a *App) Chat(ctx context.Context, room string) error {
	if !a.visit(guard.RouteConnect) {
		return nil
	}
	if room == "" {
		room = "general"
	}
	if !validRoom(room) {
		fmt.Fprintf(a.out, "Unknown room %q. Rooms: %s\n", room, strings.Join(rooms, ", "))
		return nil
	}

	a.ensureChatPrinter()
	if err := a.joinRoom(ctx, room); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	a.chatLoop(ctx, scanner)

	if a.chat.Room() != "" {
		_ = a.chat.Deactivate(ctx)
		fmt.Fprintln(a.out, a.tr("left_room"))
	}
	return nil
}

// ensureChatPrinter registers the message printer once per process. The
// subscriber prints every log entry it has not rendered yet, so it works
// across room switches (the log restarts, so does the cursor).
func (a *App) ensureChatPrinter() {
	if a.chatPrinterOn {
		return
	}
	a.chatPrinterOn = true

	a.chat.Subscribe(func() {
		a.chatMu.Lock()
		defer a.chatMu.Unlock()

		msgs := a.chat.Messages()
		if a.chatSeen > len(msgs) {
			a.chatSeen = 0
		}
		for ; a.chatSeen < len(msgs); a.chatSeen++ {
			m := msgs[a.chatSeen]
			echo := ""
			if m.LocalEcho {
				echo = " (not delivered)"
			}
			fmt.Fprintf(a.out, "%s: %s%s\n", m.Username, m.Body, echo)
		}
		if who, ok := a.chat.TypingPeer(); ok {
			fmt.Fprintf(a.out, "%s %s\n", who, a.tr("typing"))
		}
	})
}

// joinRoom activates the room and seeds the starter history when the room
// opens empty. A failed dial is not fatal: messages typed while disconnected
// are kept as local echoes.
func (a *App) joinRoom(ctx context.Context, room string) error {
	if err := a.chat.Activate(ctx, room); err != nil {
		if errors.Is(err, common.ErrAlreadyActive) {
			return nil
		}
		fmt.Fprintln(a.out, a.tr("server_unreachable"))
	} else {
		fmt.Fprintf(a.out, "%s: %s\n", a.tr("joined_room"), room)
	}

	if len(a.chat.Messages()) == 0 {
		a.chat.Seed(a.fallback.RoomSeed(room))
	}
	return nil
}

func (a *App) chatLoop(ctx context.Context, scanner *bufio.Scanner) {
	for {
		fmt.Fprintf(a.out, "[%s] ", a.chat.Room())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			parts := strings.Fields(line)
			switch parts[0] {
			case "/quit", "/q":
				return
			case "/rooms":
				fmt.Fprintln(a.out, strings.Join(rooms, ", "))
			case "/switch":
				if len(parts) < 2 || !validRoom(parts[1]) {
					fmt.Fprintln(a.out, "Usage: /switch <room>")
					continue
				}
				_ = a.joinRoom(ctx, parts[1])
			case "/who":
				if who, ok := a.chat.TypingPeer(); ok {
					fmt.Fprintf(a.out, "%s %s\n", who, a.tr("typing"))
				} else {
					fmt.Fprintln(a.out, "Nobody is typing.")
				}
			default:
				fmt.Fprintln(a.out, "Unknown command:", parts[0])
			}
			continue
		}

		a.chat.Typing(ctx)
		if err := a.chat.Send(ctx, line); err != nil {
			fmt.Fprintln(a.out, "Could not send:", err)
		}
	}
}
