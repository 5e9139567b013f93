// Package flagx holds helpers for components that each parse a subset of
// the command line.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in allowedFlags, together with their
// values. Both "-name value" and "-name=value" forms are recognized; a value
// is taken from the next argument only when it does not start with "-".
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if allowed[name] {
				out = append(out, arg)
			}
			continue
		}
		if !allowed[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// ConfigFileFlag returns the JSON config path given with -c or -config,
// or an empty string. Only these flags are parsed, so the caller's own flag
// set is not disturbed.
func ConfigFileFlag() string {
	return stringFlag([]string{"-c", "-config"}, "config", "c")
}

// EnvFileFlag returns the dotenv path given with -env, or an empty string.
func EnvFileFlag() string {
	return stringFlag([]string{"-env"}, "env", "")
}

func stringFlag(allowed []string, long, short string) string {
	var v string

	args := FilterArgs(os.Args[1:], allowed)

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&v, long, "", long)
	if short != "" {
		fs.StringVar(&v, short, "", long+" (short)")
	}
	_ = fs.Parse(args)

	return v
}
