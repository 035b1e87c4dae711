// Package cli implements the interactive AgriSmart terminal client.
//
// The REPL (see runREPL) dispatches commands to view methods on App. Views
// talk to the backend through the api adapter and to the live chat rooms
// through the chat client; session and preference state live in their own
// stores and survive restarts via local sqlite storage.
//
// Commands that map to protected views pass through the route guard first:
// without an open session they print a login notice instead of running.
// Labels honor the active language (English or Hindi) from the preference
// store.
package cli
