package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/filex"
)

// audioDir is where synthesized speech is written, under the working
// directory.
const audioDir = "audio"

// Ask sends a question to the AI assistant in the active language. An empty
// question is caught before any network call; an unreachable server gets a
// canned reply so the conversation view still works offline.
func (a *App) Ask(ctx context.Context, question string) error {
	if !a.visit(guard.RouteAIChat) {
		return nil
	}

	if question == "" {
		var err error
		question, err = getSimpleText(a.reader, a.tr("ask_question"), a.out)
		if err != nil {
			return err
		}
	}
	if question == "" {
		fmt.Fprintln(a.out, a.tr("empty_question"))
		return common.ErrValidation
	}

	exch, err := a.backend.AskAI(ctx, question, a.prefs.Language())
	if err != nil {
		if !errors.Is(err, common.ErrUnavailable) {
			return a.reportErr("Assistant failed:", err)
		}
		fmt.Fprintln(a.out, a.tr("server_unreachable"))
		exch.Answer = a.fallback.Answer(a.prefs.Language())
	}

	fmt.Fprintln(a.out, exch.Answer)
	return nil
}

// AIHistory lists past assistant exchanges.
func (a *App) AIHistory(ctx context.Context) error {
	if !a.visit(guard.RouteAIChat) {
		return nil
	}

	history, err := a.backend.ChatHistory(ctx)
	if err != nil {
		return a.reportErr("Could not load history:", err)
	}
	for _, e := range history {
		fmt.Fprintf(a.out, "Q: %s\n", e.Question)
		fmt.Fprintf(a.out, "A: %s\n", e.Answer)
	}
	return nil
}

// Speak synthesizes speech for the given text and writes the audio to a
// file. An absent audio payload is a defined backend condition, not an
// error.
func (a *App) Speak(ctx context.Context, text string) error {
	if !a.visit(guard.RouteAIChat) {
		return nil
	}
	if text == "" {
		fmt.Fprintln(a.out, "Usage: speak <text>")
		return common.ErrValidation
	}

	audio, ok, err := a.backend.Speak(ctx, text)
	if err != nil {
		return a.reportErr("Speech synthesis failed:", err)
	}
	if !ok {
		fmt.Fprintln(a.out, "Speech is not available for this text.")
		return nil
	}

	path, err := filex.WriteTo(audioDir, "speech.mp3", audio)
	if err != nil {
		fmt.Fprintln(a.out, "Could not save audio:", err)
		return err
	}
	fmt.Fprintln(a.out, "Audio saved to", path)
	return nil
}
