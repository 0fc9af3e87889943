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
	isSignedIn(ctx context.Context) bool

	EnterGuest(ctx context.Context) error
	ExitGuest(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) error
	Reload(ctx context.Context) error
	Whoami(ctx context.Context) error

	Profile(ctx context.Context) error
	Onboard(ctx context.Context) error
	Focus(ctx context.Context, args []string) error
	Avatar(ctx context.Context, args []string) error
	Plan(ctx context.Context) error

	Favorites(ctx context.Context, args []string) error
	Visit(ctx context.Context, args []string) error
	Recent(ctx context.Context, args []string) error

	Progress(ctx context.Context, args []string) error
	Step(ctx context.Context, args []string) error
	Checklist(ctx context.Context, args []string) error

	Route(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Acadium CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Prompting handlers share the same reader. The loop exits on
// EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Signed out:
//	  - help                           show available commands
//	  - guest                          start a guest session
//	  - signin                         sign in with an access token
//	  - route                          where the dashboard would send you
//	  - exit | quit                    leave the program
//
//	Signed in or guest:
//	  - whoami | profile | plan        identity, profile, subscription
//	  - onboard                        complete onboarding
//	  - focus <focus>                  change focus
//	  - avatar upload <file> | show    manage the avatar
//	  - fav [add <path> [title] | rm <path> | clear]
//	  - visit <path> [title]           record a page visit
//	  - recent [clear]                 recently visited pages
//	  - progress <tool>                step completion of a tool
//	  - step <tool> <step> done|undo   toggle a step
//	  - checklist [<item> done|undo]   onboarding checklist
//	  - route                          where the dashboard would send you
//	  - refresh                        swap in a renewed access token
//	  - reload                         refetch the profile on next read
//	  - exit-guest | signout           end the session
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("acadium %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isSignedIn(ctx) {
				printlnFn("Available commands: whoami, profile, plan, onboard, focus, avatar, fav, visit, recent, progress, step, checklist, route, refresh, reload, exit-guest, signout, exit")
			} else {
				printlnFn("Available commands: guest, signin, route, exit")
			}

		case "guest":
			err = a.EnterGuest(ctx)
		case "exit-guest":
			err = a.ExitGuest(ctx)
		case "signin", "login":
			err = a.SignIn(ctx)
		case "signout", "logout":
			err = a.SignOut(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "reload":
			err = a.Reload(ctx)
		case "whoami":
			err = a.Whoami(ctx)

		case "profile":
			err = a.Profile(ctx)
		case "onboard":
			err = a.Onboard(ctx)
		case "focus":
			err = a.Focus(ctx, args)
		case "avatar":
			err = a.Avatar(ctx, args)
		case "plan":
			err = a.Plan(ctx)

		case "fav", "favorites":
			err = a.Favorites(ctx, args)
		case "visit":
			err = a.Visit(ctx, args)
		case "recent":
			err = a.Recent(ctx, args)

		case "progress":
			err = a.Progress(ctx, args)
		case "step":
			err = a.Step(ctx, args)
		case "checklist":
			err = a.Checklist(ctx, args)

		case "route":
			err = a.Route(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
