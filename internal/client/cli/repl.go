package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Translate(ctx context.Context, text string) error
	History(ctx context.Context, args []string) error
	Terms(ctx context.Context) error
	Popular(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Feed(ctx context.Context, args []string) error
	Share(ctx context.Context) error
	Pulse(ctx context.Context, args []string) error
	Remix(ctx context.Context, args []string) error
	Remixes(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, translate <text>, history [n], terms, popular, " +
		"search <q>, feed [persona=.. tag=.. visibility=..], remixes <id>, status, exit"
	helpLoggedIn = "Available commands: translate <text>, history [n], terms, popular, search <q>, " +
		"feed [persona=.. tag=.. visibility=..], share, pulse <id> <kind>, remix <id>, remixes <id>, " +
		"whoami, profile, refresh, logout, status, exit"
)

// runREPL reads commands from scanner until EOF, "exit" or "quit". The
// first word selects the command and the rest are its arguments. Command
// errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("genz %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "profile":
			err = a.EditProfile(ctx)

		case "translate", "t":
			err = a.Translate(ctx, strings.Join(args, " "))
		case "history":
			err = a.History(ctx, args)
		case "terms":
			err = a.Terms(ctx)
		case "popular":
			err = a.Popular(ctx)
		case "search":
			err = a.Search(ctx, strings.Join(args, " "))

		case "feed":
			err = a.Feed(ctx, args)
		case "share":
			err = a.Share(ctx)
		case "pulse":
			err = a.Pulse(ctx, args)
		case "remix":
			err = a.Remix(ctx, args)
		case "remixes":
			err = a.Remixes(ctx, args)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", httpclient.UserMessage(err, err.Error()))
		}
	}
}
