package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/weiawesome/wes-io-live/smallid/internal/config"
	"github.com/weiawesome/wes-io-live/smallid/internal/generator"
	pkglog "github.com/weiawesome/wes-io-live/smallid/pkg/log"
)

const ServiceName = "smallid"

// Options are accepted before any subcommand.
type Options struct {
	ConfigDir string `short:"c" long:"config" description:"Directory containing config.yaml" default:"./config"`
	Verbose   bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

// App holds the state shared by every subcommand. It is populated lazily so
// that --help never touches configuration.
type App struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer

	opts   Options
	cfg    *config.Config
	gen    *generator.ShortIDGenerator
	logger zerolog.Logger

	// serveReady receives the bound address once serve is listening.
	serveReady chan<- string
}

// Run parses args and executes the selected subcommand. With no subcommand
// it prints a single identifier.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return newApp(ctx, stdout, stderr).run(args)
}

func newApp(ctx context.Context, stdout, stderr io.Writer) *App {
	return &App{
		ctx:    ctx,
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.Nop(),
	}
}

func (a *App) run(args []string) error {
	parser := flags.NewNamedParser(ServiceName, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Generate DDD-llll identifiers"
	parser.LongDescription = "Prints a random identifier made of three digits, a hyphen and four lowercase letters, e.g. 482-qzkt."
	parser.SubcommandsOptional = true
	if _, err := parser.AddGroup("Application Options", "", &a.opts); err != nil {
		return err
	}
	if err := a.addCommands(parser); err != nil {
		return err
	}

	parser.CommandHandler = func(cmd flags.Commander, rest []string) error {
		if cmd == nil {
			return nil
		}
		if err := a.setup(); err != nil {
			return err
		}
		return cmd.Execute(rest)
	}

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			_, werr := fmt.Fprintln(a.stdout, flagsErr.Message)
			return werr
		}
		return err
	}

	if parser.Active != nil {
		return nil
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	if err := a.setup(); err != nil {
		return err
	}
	return a.printIDs(1)
}

func (a *App) addCommands(parser *flags.Parser) error {
	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"generate", "Print identifiers", "Print one or more identifiers, one per line.", &generateCommand{app: a}},
		{"validate", "Check identifiers", "Report whether each argument has the DDD-llll shape.", &validateCommand{app: a}},
		{"parse", "Split an identifier", "Print the digit and letter groups of an identifier.", &parseCommand{app: a}},
		{"stats", "Check the distribution", "Generate many identifiers and run a chi-square test per position.", &statsCommand{app: a}},
		{"serve", "Run the HTTP API", "Serve the identifier API until interrupted.", &serveCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return fmt.Errorf("failed to register %s command: %w", c.name, err)
		}
	}
	return nil
}

// setup loads configuration and builds the logger and generator.
func (a *App) setup() error {
	cfg, err := config.Load(a.opts.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if a.opts.Verbose {
		level = "debug"
	}
	a.logger = pkglog.New(pkglog.Config{
		Level:       level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: ServiceName,
		Output:      a.stderr,
	})

	gen, err := cfg.NewGenerator()
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	a.cfg = cfg
	a.gen = gen

	a.logger.Debug().
		Str(pkglog.FieldSource, cfg.Generator.Source).
		Int(pkglog.FieldMaxBatch, cfg.Generator.MaxBatch).
		Msg("generator initialized")
	return nil
}
