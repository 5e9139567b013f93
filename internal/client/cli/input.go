package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is swapped out in tests.
var readPassword = term.ReadPassword

// GetSimpleText shows the prompt on its own line followed by "> " and
// returns the trimmed answer. A final line without a newline still counts.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s\n> ", prompt)
	return readLine(reader)
}

// GetWithDefault shows def in brackets and returns it for an empty answer.
func GetWithDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt += " [" + def + "]"
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil || s != "" {
		return s, err
	}
	return def, nil
}

// Confirm defaults to no.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", prompt)
	s, err := readLine(reader)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// GetPassword reads from the terminal without echo.
func GetPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	return pw, err
}

// GetMultiline collects lines up to the first empty one and joins them
// with ", " so the result fits a single form field.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s\n(empty line to finish)\n", prompt)

	var lines []string
	for {
		line, err := readLine(reader)
		if err != nil || line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, ", "), nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
