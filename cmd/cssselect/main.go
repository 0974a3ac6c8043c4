package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/config"
	"github.com/benbjohnson/cssselect/parser"
	"github.com/benbjohnson/cssselect/scanner"
	"github.com/benbjohnson/cssselect/selector"
	"github.com/benbjohnson/cssselect/token"
)

const appName = "cssselect"

type envKey struct{}

// localEnv keeps everything the program needs in a single place.
type localEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	start    time.Time
	logReady bool
}

func envFromContext(ctx context.Context) *localEnv {
	if env, ok := ctx.Value(envKey{}).(*localEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &localEnv{start: time.Now(), Log: zap.NewNop()})
}

// initializeAppContext prepares application context before command execution
// but after command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		env.Log = zap.NewNop()
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.logReady = true

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", time.Since(env.start)), zap.Strings("parsed args", cmd.Args().Slice()))
	_ = env.Log.Sync()
	return nil
}

// Errors are returned from subcommands as regular errors and reported here
// instead of by urfave/cli.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.logReady {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "parses CSS selectors and reports their structure and specificity",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log every parsed selector"},
		},
		Commands: []*cli.Command{
			{
				Name:         "parse",
				Usage:        "Parses selector lists and prints every selector with its specificity",
				OnUsageError: usageErrorHandler,
				Action:       runParse,
				ArgsUsage:    "SELECTORS...",
			},
			{
				Name:         "sheet",
				Usage:        "Parses the selectors of every style rule in CSS file(s)",
				OnUsageError: usageErrorHandler,
				Action:       runSheet,
				ArgsUsage:    "FILE...",
				CustomHelpTemplate: fmt.Sprintf(`%s
FILE:
    path to a CSS file, "-" reads from STDIN. Rules inside @media, @supports
    and @document blocks are included.
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}

// runParse parses every argument as a selector list. An invalid list does
// not stop the others from being reported.
func runParse(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no selectors to parse")
	}

	p := selector.NewParser(env.Log)
	ns := env.Cfg.Namespaces.Map()
	w := writer(cmd)

	for _, text := range cmd.Args().Slice() {
		sels, er := p.ParseAll(text, ns)
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("%q: %w", text, er))
			continue
		}
		for _, sel := range sels {
			fmt.Fprintf(w, "%s\t%s\n", sel, sel.Specificity())
		}
	}
	return err
}

// runSheet parses the rule preludes of CSS files as selector lists.
func runSheet(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no files to parse")
	}

	p := selector.NewParser(env.Log)
	ns := env.Cfg.Namespaces.Map()
	w := writer(cmd)

	for _, fname := range cmd.Args().Slice() {
		ss, er := readStyleSheet(env.Log, fname)
		if er != nil {
			err = multierr.Append(err, er)
			continue
		}

		n, er := printRules(w, p, ns, fname, ss.Rules)
		err = multierr.Append(err, er)
		env.Log.Info("Processed stylesheet", zap.String("file", fname), zap.Int("selectors", n))
	}
	return err
}

// readStyleSheet parses a CSS file, "-" being STDIN. Syntax problems in the
// stylesheet are logged and what could be parsed is returned.
func readStyleSheet(log *zap.Logger, fname string) (*ast.StyleSheet, error) {
	var r io.Reader = os.Stdin
	if fname != "-" {
		f, err := os.Open(fname)
		if err != nil {
			return nil, fmt.Errorf("unable to open '%s': %w", fname, err)
		}
		defer f.Close()
		r = f
	}

	s := scanner.New(r)
	ss, err := parser.ParseStyleSheet(s)
	for _, e := range s.Errors {
		log.Warn("Malformed CSS", zap.String("file", fname), zap.Int("line", e.Pos.Line+1), zap.String("error", e.Message))
	}
	if err != nil {
		log.Warn("Stylesheet parsed with errors", zap.String("file", fname), zap.Error(err))
	}
	return ss, nil
}

// writer returns where command output goes.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// groupingRules lists the at-rules whose blocks contain style rules.
var groupingRules = map[string]bool{
	"media":    true,
	"supports": true,
	"document": true,
}

// printRules prints the selectors of every style rule in a and returns how
// many were printed.
func printRules(w io.Writer, p *selector.Parser, ns selector.Namespaces, fname string, a ast.Rules) (n int, err error) {
	for _, r := range a {
		switch r := r.(type) {
		case *ast.QualifiedRule:
			var pos token.Pos
			if len(r.Prelude) > 0 {
				pos = ast.Position(r.Prelude[0])
			}
			sels, er := p.ParseValues(r.Prelude, ns).Collect()
			if er != nil {
				err = multierr.Append(err, fmt.Errorf("%s:%d:%d: %q: %w", fname, pos.Line+1, pos.Char+1, strings.TrimSpace(r.Prelude.String()), er))
				continue
			}
			for _, sel := range sels {
				fmt.Fprintf(w, "%s:%d:%d\t%s\t%s\n", fname, pos.Line+1, pos.Char+1, sel, sel.Specificity())
				n++
			}

		case *ast.AtRule:
			if !groupingRules[strings.ToLower(r.Name)] || r.Block == nil {
				continue
			}
			// Blocks are kept as component values, their rules are consumed
			// from the original tokens.
			rules, er := parser.ParseRules(parser.NewTokenScanner(r.Block.Values.Tokens()))
			if er != nil {
				err = multierr.Append(err, fmt.Errorf("%s: @%s: %w", fname, r.Name, er))
			}
			m, er := printRules(w, p, ns, fname, rules)
			n += m
			err = multierr.Append(err, er)
		}
	}
	return n, err
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := writer(cmd)
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Debug("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
