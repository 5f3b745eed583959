package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Sort(ctx context.Context, field string) error
	Page(ctx context.Context, n string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Refresh(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the userdesk client.
//
// It reads a line from reader, parses the first token as the command and
// passes the rest to the handler. Prompts inside handlers read from the same
// reader. The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help              show available commands
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - (l)ist            show the current page
//	  - search [term]     filter by name, username or email; no term clears it
//	  - sort <field>      sort by field; repeating the field flips direction
//	  - page <n>, next, prev
//	  - refresh           fetch the users again
//	  - show <id>         user detail with posts
//	  - edit <id>         edit a user
//	  - logout
//
// List commands typed while logged out are answered with a login hint.
// Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ud %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search, sort, page, next, prev, refresh, show, edit, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !isDashboardCommand(cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		switch cmd {
		case "l", "list":
			_ = a.List(ctx)
		case "search":
			_ = a.Search(ctx, arg)
		case "sort":
			_ = a.Sort(ctx, arg)
		case "page":
			_ = a.Page(ctx, arg)
		case "next":
			_ = a.Next(ctx)
		case "prev":
			_ = a.Prev(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "show":
			_ = a.Show(ctx, arg)
		case "edit":
			_ = a.Edit(ctx, arg)
		case "logout":
			_ = a.Logout(ctx)
		}
	}
}

func isDashboardCommand(cmd string) bool {
	switch cmd {
	case "l", "list", "search", "sort", "page", "next", "prev", "refresh", "show", "edit", "logout":
		return true
	}
	return false
}
