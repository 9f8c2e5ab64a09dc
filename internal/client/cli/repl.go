package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Account(ctx context.Context)
	Rename(ctx context.Context, name string)
	Categories(ctx context.Context)
	List(ctx context.Context, days int)
	Add(ctx context.Context, categoryID int64, amount, comment string)
	Del(ctx context.Context, id int64)
	Sync(ctx context.Context)
}

// runREPL reads a line from the scanner, parses the first token as the
// command and dispatches to methods on 'a'. Unknown commands and bad
// arguments are reported back to the user. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// Commands:
//
//	help                              — show available commands
//	account                           — show the primary account
//	rename <name>                     — rename the primary account
//	categories                        — list categories
//	list [days]                       — list transactions for the last N days (default 30)
//	add <categoryId> <amount> [note]  — add a transaction
//	del <id>                          — delete a transaction
//	sync                              — replay queued offline operations
//	exit | quit                       — leave the program
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("finsync > ")
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

		switch cmd {
		case "help":
			printlnFn("Available commands: account, rename, categories, (l)ist, add, del, sync, exit")

		case "account":
			a.Account(ctx)

		case "rename":
			if len(args) == 0 {
				printlnFn("Usage: rename <name>")
				continue
			}
			a.Rename(ctx, strings.Join(args, " "))

		case "categories":
			a.Categories(ctx)

		case "l", "list":
			days := 30
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					printlnFn("Usage: list [days]")
					continue
				}
				days = n
			}
			a.List(ctx, days)

		case "add":
			if len(args) < 2 {
				printlnFn("Usage: add <categoryId> <amount> [comment]")
				continue
			}
			categoryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				printlnFn("Usage: add <categoryId> <amount> [comment]")
				continue
			}
			a.Add(ctx, categoryID, args[1], strings.Join(args[2:], " "))

		case "del":
			if len(args) == 0 {
				printlnFn("Usage: del <id>")
				continue
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				printlnFn("Usage: del <id>")
				continue
			}
			a.Del(ctx, id)

		case "sync":
			a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
