package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command is one REPL verb. Admin commands are hidden from help and refused
// until an admin has logged in.
type command struct {
	name  string
	args  string
	help  string
	admin bool
	run   func(ctx context.Context, args []string) error
}

// errUsage makes the REPL print the command's usage line.
var errUsage = errors.New("usage")

// runREPL reads one command per line from reader, dispatches it by its first
// token and prints any error the command returns. The loop exits on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, cmds []command, isAdmin func() bool, statusFn func() string, reader *bufio.Reader) {
	byName := make(map[string]command, len(cmds))
	for _, c := range cmds {
		byName[c.name] = c
	}

	for {
		printlnFn(fmt.Sprintf("exam> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(cmds, isAdmin())
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := byName[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if c.admin && !isAdmin() {
			printlnFn("Admin login required: use login first")
			continue
		}

		if err := c.run(ctx, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn("Usage:", strings.TrimSpace(c.name+" "+c.args))
			} else {
				printlnFn(errorText(err))
			}
		}
	}
}

func printHelp(cmds []command, admin bool) {
	printlnFn("Available commands:")
	for _, c := range cmds {
		if c.admin && !admin {
			continue
		}
		printlnFn(fmt.Sprintf("  %-34s %s", strings.TrimSpace(c.name+" "+c.args), c.help))
	}
	printlnFn(fmt.Sprintf("  %-34s %s", "exit | quit", "leave the program"))
}
