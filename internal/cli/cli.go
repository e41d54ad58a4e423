// Package cli builds the wfroots command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/indaco/wfroots/internal/config"
	"github.com/indaco/wfroots/internal/core"
	"github.com/indaco/wfroots/internal/discovery"
	"github.com/indaco/wfroots/internal/logger"
	"github.com/indaco/wfroots/internal/openfiles"
	"github.com/indaco/wfroots/internal/printer"
	"github.com/indaco/wfroots/internal/report"
	"github.com/indaco/wfroots/internal/tui"
	urfavecli "github.com/urfave/cli/v3"
)

// Version is set at build time.
var Version = "dev"

// Deps are the external collaborators of a run. Zero fields fall back to
// the host implementations.
type Deps struct {
	Stdout        io.Writer
	Stderr        io.Writer
	FileSystem    core.FileSystem
	NewEnumerator func(backend string, fs core.FileSystem) (openfiles.Enumerator, error)
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.FileSystem == nil {
		d.FileSystem = core.NewOSFileSystem()
	}
	if d.NewEnumerator == nil {
		d.NewEnumerator = openfiles.New
	}
	return d
}

// New builds and returns the root CLI command.
func New(deps Deps) *urfavecli.Command {
	deps = deps.withDefaults()
	defaults := config.Default()

	return &urfavecli.Command{
		Name:    "wfroots",
		Version: fmt.Sprintf("v%s", Version),
		Usage:   "Discover WildFly / JBoss EAP installation roots",
		UsageText: `wfroots [options] [scan-root ...]

Finds installations in two ways:
  - files held open by running server processes, traced up to their
    modules/system/layers/base directory
  - a bounded search below each scan root (default: /opt /usr /home)

Prints the deduplicated, sorted installation roots, one per line.`,
		ArgsUsage: "[scan-root ...]",
		Writer:    deps.Stdout,
		ErrWriter: deps.Stderr,
		Flags: []urfavecli.Flag{
			&urfavecli.IntFlag{
				Name:    "max-depth",
				Aliases: []string{"d"},
				Usage:   "Directory levels searched below each scan root",
				Value:   defaults.Depth(),
			},
			&urfavecli.StringFlag{
				Name:    "process",
				Aliases: []string{"p"},
				Usage:   "Command name of the server processes to inspect",
				Value:   defaults.ProcessClass,
			},
			&urfavecli.StringFlag{
				Name:    "enumerator",
				Aliases: []string{"e"},
				Usage:   "Open-file backend: " + strings.Join(openfiles.Backends(), ", "),
				Value:   defaults.Enumerator,
			},
			&urfavecli.StringFlag{
				Name:  "signature",
				Usage: "Directory suffix that identifies an installation",
				Value: defaults.Signature,
			},
			&urfavecli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: " + strings.Join(config.Formats(), ", "),
				Value:   defaults.Format,
			},
			&urfavecli.BoolFlag{
				Name:  "skip-running",
				Usage: "Do not inspect running processes",
			},
			&urfavecli.BoolFlag{
				Name:  "skip-installed",
				Usage: "Do not search the filesystem",
			},
			&urfavecli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Read settings from a YAML or TOML file",
			},
			&urfavecli.BoolFlag{
				Name:  "verbose",
				Usage: "Log discovery progress to stderr",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			stderr, _ := deps.Stderr.(*os.File)
			printer.SetNoColor(!tui.ColorEnabled(stderr, cmd.Bool("no-color")))
			return ctx, nil
		},
		// Usage errors go to stderr through the caller; help text on stdout
		// would be read as installation roots.
		OnUsageError: func(_ context.Context, _ *urfavecli.Command, err error, _ bool) error {
			return err
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return run(ctx, cmd, deps)
		},
	}
}

// run executes a discovery and prints its result. Nothing is written to
// stdout unless the whole run succeeds.
func run(ctx context.Context, cmd *urfavecli.Command, deps Deps) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	verbose := cmd.Bool("verbose")
	log := logger.New(deps.Stderr, verbose)

	results := config.NewValidator(deps.FileSystem, cfg).Validate(ctx)
	if config.HasErrors(results) {
		return fmt.Errorf("invalid configuration: %w", config.Errors(results))
	}
	for _, w := range config.Warnings(results) {
		log.Debug(w.Message, "check", w.Category)
		if verbose {
			printer.PrintWarning(deps.Stderr, w.Message)
		}
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	var enumerator openfiles.Enumerator
	if !opts.SkipRunning {
		enumerator, err = deps.NewEnumerator(cfg.Enumerator, deps.FileSystem)
		if err != nil {
			return err
		}
	}

	svc := discovery.NewService(deps.FileSystem, enumerator, log)
	result, err := svc.Discover(ctx, opts)
	if err != nil {
		return err
	}

	if err := report.Write(deps.Stdout, cfg.Format, result); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if verbose {
		printer.PrintSummary(deps.Stderr, result.Running.Len(), result.Installed.Len(), len(result.Roots()))
	}
	return nil
}

// resolveConfig layers explicitly set flags over the optional config file
// over the defaults. Positional arguments replace the scan roots.
func resolveConfig(cmd *urfavecli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.LoadFn(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.IsSet("max-depth") {
		depth := cmd.Int("max-depth")
		cfg.MaxDepth = &depth
	}
	if cmd.IsSet("process") {
		cfg.ProcessClass = cmd.String("process")
	}
	if cmd.IsSet("enumerator") {
		cfg.Enumerator = cmd.String("enumerator")
	}
	if cmd.IsSet("signature") {
		cfg.Signature = cmd.String("signature")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("skip-running") {
		cfg.SkipRunning = cmd.Bool("skip-running")
	}
	if cmd.IsSet("skip-installed") {
		cfg.SkipInstalled = cmd.Bool("skip-installed")
	}

	if args := cmd.Args().Slice(); len(args) > 0 {
		cfg.ScanRoots = args
	}

	return cfg, nil
}
