package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/pak-go/internal/cli/config"
	"github.com/yndnr/pak-go/internal/cli/output"
	"github.com/yndnr/pak-go/internal/infra/buildinfo"
	"github.com/yndnr/pak-go/internal/infra/confloader"
	"github.com/yndnr/pak-go/internal/telemetry/logger"
)

const runtimeKey = "runtime"

// runtime is the per-invocation state built by the Before hook.
type runtime struct {
	cfg        *config.CLIConfig
	loader     *confloader.Loader
	configPath string
	log        logger.Logger
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "pak-cli",
		Usage:                "Create and check prefixed API keys",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			GenerateCommand(),
			CheckCommand(),
			HashCommand(),
			InspectCommand(),
			DigestsCommand(),
			ConfigCommand(),
			RemoteCommand(),
			VersionCommand(),
		},
		Before: loadRuntime,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default: " + config.LocalConfigFile + ", then ~/.pak/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "server",
			Usage: "pak-server address for remote commands",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log debug output to stderr",
		},
	}
}

// loadRuntime resolves the configuration: file, then PAK_* environment,
// then global flags.
func loadRuntime(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg, loader, err := config.Load(path)
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	if c.IsSet("server") {
		overrides["server"] = c.String("server")
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return fmt.Errorf("apply flags: %w", err)
		}
	}

	if err := config.Verify(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.Discard()
	if c.Bool("verbose") {
		log, err = logger.New(logger.Config{Level: "debug", Format: "text", Output: errWriter(c)})
		if err != nil {
			return err
		}
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[runtimeKey] = &runtime{cfg: cfg, loader: loader, configPath: path, log: log}
	return nil
}

// getRuntime returns the state stored by loadRuntime, falling back to
// defaults when the hook did not run.
func getRuntime(c *cli.Context) *runtime {
	if rt, ok := c.App.Metadata[runtimeKey].(*runtime); ok {
		return rt
	}
	return &runtime{cfg: config.Default(), loader: confloader.NewLoader(), log: logger.Discard()}
}

// render writes data in the configured output format.
func render(c *cli.Context, data any) error {
	format, err := output.ParseFormat(getRuntime(c).cfg.Output)
	if err != nil {
		return err
	}
	return output.NewFormatter(format, c.Bool("wide")).Format(writer(c), data)
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// PrintError prints an error message to stderr.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
