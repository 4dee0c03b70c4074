// Package flagx contains helpers for parsing command-line flags in a way
// that lets several packages define their own flag sets without tripping
// over each other's arguments.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -d dsn
//  2. Flag and value combined with '=':      --env=.env.local
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" or "-f=value"
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// flag as a separate argument, value may follow
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// EnvFileFlags extracts the dotenv file path provided via the -n or -envfile
// flags. Only these flags are parsed; other arguments are ignored, so the
// caller's own flag set is unaffected. Returns an empty string when neither
// flag is present.
func EnvFileFlags() string {
	var envFile string

	args := FilterArgs(os.Args[1:], []string{"-n", "-envfile"})

	fs := flag.NewFlagSet("envfile", flag.ContinueOnError)
	fs.StringVar(&envFile, "envfile", "", "path to .env file")
	fs.StringVar(&envFile, "n", "", "path to .env file (short)")
	_ = fs.Parse(args)

	return envFile
}
