package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/pak-go/internal/cli/connection"
)

// RemoteCommand returns the remote command group, which runs key
// operations on a pak-server.
func RemoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "remote",
		Usage: "Issue and check keys through a pak-server",
		Subcommands: []*cli.Command{
			{
				Name:  "health",
				Usage: "Check server health",
				Action: func(c *cli.Context) error {
					status, err := client(c).Health(c.Context)
					if err != nil {
						return err
					}
					return render(c, status)
				},
			},
			{
				Name:  "issue",
				Usage: "Issue keys with the server's prefix",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Value:   1,
						Usage:   "Number of keys",
					},
				},
				Action: func(c *cli.Context) error {
					keys, err := client(c).IssueKeys(c.Context, c.Int("count"))
					if err != nil {
						return err
					}
					rows := make(generatedKeys, 0, len(keys))
					for _, k := range keys {
						rows = append(rows, generatedKey{Key: k.Key, Hash: k.Hash, Prefix: k.Prefix, ShortToken: k.ShortToken})
					}
					return render(c, rows)
				},
			},
			{
				Name:      "hash",
				Usage:     "Hash a key with the server's digest",
				ArgsUsage: "KEY",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected 1 argument (KEY), got %d", c.NArg())
					}
					hash, err := client(c).Hash(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return render(c, hashResult{Hash: hash})
				},
			},
			{
				Name:      "verify",
				Usage:     "Check a key against a hash on the server",
				ArgsUsage: "KEY HASH",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("expected 2 arguments (KEY HASH), got %d", c.NArg())
					}
					match, err := client(c).Verify(c.Context, c.Args().Get(0), c.Args().Get(1))
					if err != nil {
						return err
					}
					return render(c, checkResult{Match: match})
				},
			},
		},
	}
}

func client(c *cli.Context) *connection.HTTPClient {
	rt := getRuntime(c)
	rt.log.Debug("remote call", "server", rt.cfg.Server, "command", c.Command.Name)
	return connection.NewHTTPClient(rt.cfg.Server)
}
