// Command mesto drives the Mesto gallery page headlessly: it loads the
// profile and cards, performs one user action through the page forms and
// prints the result, or serves the rendered page over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/mesto/pkg/mesto/mestotest"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], runOptions{stdout: os.Stdout, stderr: os.Stderr})
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) && !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// runOptions carries the process surroundings so tests can replace them.
type runOptions struct {
	// env replaces the process environment when non-nil.
	env    map[string]string
	stdout io.Writer
	stderr io.Writer
	// fake backs -fake runs; a seeded one is created when nil.
	fake *mestotest.Fake
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"render":   renderCmd,
	"profile":  profileCmd,
	"avatar":   avatarCmd,
	"add-card": addCardCmd,
	"like":     likeCmd,
	"delete":   deleteCmd,
	"serve":    serveCmd,
}

func run(ctx context.Context, args []string, opts runOptions) error {
	fs := flag.NewFlagSet("mesto", flag.ContinueOnError)
	fs.SetOutput(opts.stderr)
	fake := fs.Bool("fake", false, "use an in-memory Mesto API seeded with sample data")
	fs.Usage = func() { printUsage(opts.stderr) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		printUsage(opts.stderr)
		return errUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(opts.stderr, "unknown command %q\n\n", fs.Arg(0))
		printUsage(opts.stderr)
		return errUsage
	}

	a, err := newApp(ctx, *fake, opts)
	if err != nil {
		return err
	}
	defer a.close()

	return cmd(ctx, a, fs.Args()[1:])
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  mesto [-fake] <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  render                       print the loaded page\n")
	fmt.Fprintf(w, "  profile [-name] [-about]     edit the profile\n")
	fmt.Fprintf(w, "  avatar -link                 change the avatar\n")
	fmt.Fprintf(w, "  add-card -name -link         add a card\n")
	fmt.Fprintf(w, "  like -id                     toggle the like of a card\n")
	fmt.Fprintf(w, "  delete -id                   delete an own card\n")
	fmt.Fprintf(w, "  serve                        serve the rendered page over HTTP\n\n")
	fmt.Fprintf(w, "Environment:\n")
	fmt.Fprintf(w, "  MESTO_TOKEN, MESTO_COHORT, MESTO_BASE_URL, MESTO_TIMEOUT\n")
	fmt.Fprintf(w, "  APP_ENV, APP_LANG, LOG_LEVEL, HTTP_ADDR\n")
}
