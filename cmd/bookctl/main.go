package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erauner12/bookcatalog/internal/catalog"
	"github.com/erauner12/bookcatalog/internal/client"
	"github.com/erauner12/bookcatalog/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = "0.1.0"

// flags holds CLI overrides applied on top of file and environment configuration
type flags struct {
	configPath string
	apiURL     string
	timeout    int
	debug      bool
	logLevel   string
	yes        bool
}

// app is the per-invocation wiring shared by every subcommand
type app struct {
	cfg      *config.Config
	coord    *catalog.Coordinator
	in       *bufio.Scanner
	out      io.Writer
	errOut   io.Writer
	flags    flags
	stdinTTY bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		errOut:   os.Stderr,
		stdinTTY: term.IsTerminal(int(os.Stdin.Fd())),
	}

	if err := a.rootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "Manage the book catalog from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.flags)
			if err != nil {
				return a.fail(fmt.Errorf("failed to load configuration: %w", err))
			}
			a.cfg = cfg
			setupLogging(cfg, a.errOut)
			a.coord = a.newCoordinator()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Path to configuration file (JSON)")
	pf.StringVar(&a.flags.apiURL, "api", "", "Book API base URL (overrides config)")
	pf.IntVar(&a.flags.timeout, "timeout", 0, "Request timeout in seconds (overrides config)")
	pf.BoolVar(&a.flags.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		a.listCommand(),
		a.addCommand(),
		a.updateCommand(),
		a.deleteCommand(),
		a.shellCommand(),
	)
	return root
}

// loadConfig loads file and environment configuration, then applies CLI flags before validating
func loadConfig(f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.apiURL != "" {
		cfg.APIBaseURL = f.apiURL
	}
	if f.timeout > 0 {
		cfg.TimeoutSeconds = f.timeout
	}
	if f.yes {
		cfg.AssumeYes = true
	}
	if f.debug {
		cfg.Debug = true
		// --debug implies debug level unless a level was given explicitly
		if f.logLevel == "" {
			cfg.LogLevel = "debug"
		}
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// setupLogging configures the global logger
func setupLogging(cfg *config.Config, w io.Writer) {
	zerolog.SetGlobalLevel(parseLogLevel(cfg.LogLevel))

	if cfg.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().Caller().Logger()
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// parseLogLevel converts a string log level to zerolog.Level
func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (a *app) newCoordinator() *catalog.Coordinator {
	httpClient := client.NewHTTPClient(a.cfg.APIBaseURL, client.WithTimeout(a.cfg.Timeout()))
	return catalog.NewCoordinator(
		client.NewBookClient(httpClient),
		catalog.WithConfirmer(&promptConfirmer{
			in:          a.in,
			out:         a.out,
			assumeYes:   a.cfg.AssumeYes,
			interactive: a.stdinTTY,
		}),
	)
}

// errReported marks an error whose text has already been printed
var errReported = errors.New("reported")

func (a *app) fail(err error) error {
	fmt.Fprintf(a.errOut, "Error: %v\n", err)
	return errReported
}

// banner prints the coordinator's banner and converts it into a command failure
func (a *app) banner() error {
	st := a.coord.State()
	if st.Status != catalog.StatusError {
		return nil
	}
	return a.fail(errors.New(st.Message))
}
