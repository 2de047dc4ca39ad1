package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/pak-go/internal/cli/config"
)

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and create the CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "yaml or toml",
						Value: "yaml",
					},
				},
				Action: runConfigShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file in use",
				Action: runConfigPath,
			},
			{
				Name:  "init",
				Usage: "Write a config file with the defaults",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination (default: ~/.pak/cli.yaml)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: runConfigInit,
			},
		},
	}
}

func runConfigShow(c *cli.Context) error {
	var ext string
	switch c.String("format") {
	case "yaml":
		ext = ".yaml"
	case "toml":
		ext = ".toml"
	default:
		return fmt.Errorf("unknown format %q (want yaml or toml)", c.String("format"))
	}

	rt := getRuntime(c)
	// The loader only holds keys some source set; start from the
	// effective struct so defaults show too.
	if err := rt.loader.LoadMap(configMap(rt.cfg)); err != nil {
		return err
	}
	data, err := rt.loader.Marshal(ext)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = writer(c).Write(data)
	return err
}

func configMap(cfg *config.CLIConfig) map[string]any {
	return map[string]any{
		"digest":             cfg.Digest,
		"rng":                cfg.RNG,
		"short_token_prefix": cfg.ShortTokenPrefix,
		"short_token_length": cfg.ShortTokenLength,
		"long_token_length":  cfg.LongTokenLength,
		"output":             cfg.Output,
		"server":             cfg.Server,
	}
}

func runConfigPath(c *cli.Context) error {
	path := getRuntime(c).configPath
	if path == "" {
		path = "(none, using defaults)"
	}
	_, err := fmt.Fprintln(writer(c), path)
	return err
}

func runConfigInit(c *cli.Context) error {
	path := c.String("path")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if config.Exists(path) && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer(c), "Wrote %s\n", path)
	return err
}
