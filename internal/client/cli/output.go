package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/dmitrijs2005/examdesk/internal/client/client"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

func (a *App) info(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) success(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	green.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	yellow.Fprintf(a.out, format+"\n", args...)
}

func (a *App) table(header []string, rows [][]string) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "Nothing to show.")
		return
	}
	t := tablewriter.NewWriter(a.out)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	t.Render()
}

// errorText turns a command failure into one line for the user.
func errorText(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return red.Sprintf("Server unavailable, try again later (%v)", err)
	case errors.Is(err, client.ErrRateLimited):
		return red.Sprint("Too many attempts, wait a minute and try again")
	case errors.Is(err, client.ErrUnauthorized):
		return red.Sprintf("Not authorized: %v", err)
	default:
		return red.Sprintf("Error: %v", err)
	}
}
