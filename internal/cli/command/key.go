package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/pak-go/internal/cli/output"
	"github.com/yndnr/pak-go/internal/core/service"
	"github.com/yndnr/pak-go/pkg/pak"
)

// generatedKey is one row of generate output.
type generatedKey struct {
	Key        string `json:"key" yaml:"key"`
	Hash       string `json:"hash" yaml:"hash"`
	Prefix     string `json:"prefix" yaml:"prefix" table:"wide"`
	ShortToken string `json:"short_token" yaml:"short_token" table:"wide"`
}

type generatedKeys []generatedKey

// Table prints a single key as "PAK:" and "Hash:" lines, and a batch as
// one row per key.
func (g generatedKeys) Table(wide bool) *output.Table {
	t := &output.Table{}
	if len(g) == 1 && !wide {
		t.AddRow("PAK:", g[0].Key)
		t.AddRow("Hash:", g[0].Hash)
		return t
	}

	t.SetHeaders("KEY", "HASH")
	if wide {
		t.SetHeaders("KEY", "HASH", "PREFIX", "SHORT_TOKEN")
	}
	for _, k := range g {
		if wide {
			t.AddRow(k.Key, k.Hash, k.Prefix, k.ShortToken)
		} else {
			t.AddRow(k.Key, k.Hash)
		}
	}
	return t
}

// checkResult is the output of check and remote verify.
type checkResult struct {
	Match bool `json:"match" yaml:"match"`
}

func (r checkResult) Table(bool) *output.Table {
	t := &output.Table{}
	t.AddRow("Match:", fmt.Sprintf("%t", r.Match))
	return t
}

// hashResult is the output of hash and remote hash.
type hashResult struct {
	Hash string `json:"hash" yaml:"hash"`
}

func (r hashResult) Table(bool) *output.Table {
	t := &output.Table{}
	t.AddRow("Hash:", r.Hash)
	return t
}

func digestFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "digest",
		Aliases: []string{"d"},
		Usage:   "Digest for the long token hash: " + strings.Join(pak.DigestNames(), ", "),
	}
}

// GenerateCommand returns the generate command.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Generate new keys and their hashes",
		ArgsUsage: "PREFIX",
		Flags: []cli.Flag{
			digestFlag(),
			&cli.StringFlag{
				Name:    "rng",
				Aliases: []string{"r"},
				Usage:   "Random source: " + strings.Join(pak.RandomSourceNames(), ", "),
			},
			&cli.IntFlag{
				Name:    "short-length",
				Aliases: []string{"s"},
				Usage:   "Short token length",
			},
			&cli.StringFlag{
				Name:    "short-prefix",
				Aliases: []string{"p"},
				Usage:   "Fixed text at the start of every short token",
			},
			&cli.IntFlag{
				Name:    "long-length",
				Aliases: []string{"l"},
				Usage:   "Long token length",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   fmt.Sprintf("Number of keys (1-%d)", service.MaxBatchSize),
				Value:   1,
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected 1 argument (PREFIX), got %d", c.NArg())
	}
	rt := getRuntime(c)

	settings := rt.cfg.Settings(c.Args().First())
	if c.IsSet("digest") {
		settings.Digest = c.String("digest")
	}
	if c.IsSet("rng") {
		settings.RandomSource = c.String("rng")
	}
	if c.IsSet("short-length") {
		settings.ShortTokenLength = c.Int("short-length")
	}
	if c.IsSet("short-prefix") {
		settings.ShortTokenPrefix = c.String("short-prefix")
	}
	if c.IsSet("long-length") {
		settings.LongTokenLength = c.Int("long-length")
	}

	svc, err := service.NewKeyService(settings, service.WithLogger(rt.log))
	if err != nil {
		return err
	}

	issued, err := svc.IssueBatch(c.Context, c.Int("count"))
	if err != nil {
		return err
	}

	rows := make(generatedKeys, 0, len(issued))
	for _, k := range issued {
		rows = append(rows, generatedKey{
			Key:        k.Key.FullString(),
			Hash:       k.Hash,
			Prefix:     k.Key.Prefix(),
			ShortToken: k.Key.ShortToken(),
		})
	}
	return render(c, rows)
}

// checkingService builds a service for commands that only parse and hash.
// The prefix is irrelevant to hashing, so it is left empty.
func checkingService(c *cli.Context) (*service.KeyService, error) {
	rt := getRuntime(c)
	settings := rt.cfg.Settings("")
	if c.IsSet("digest") {
		settings.Digest = c.String("digest")
	}
	return service.NewKeyService(settings, service.WithLogger(rt.log))
}

// CheckCommand returns the check command.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check a key against a stored hash",
		ArgsUsage: "KEY HASH",
		Flags:     []cli.Flag{digestFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected 2 arguments (KEY HASH), got %d", c.NArg())
			}
			svc, err := checkingService(c)
			if err != nil {
				return err
			}

			match, err := svc.Verify(c.Context, c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			return render(c, checkResult{Match: match})
		},
	}
}

// HashCommand returns the hash command.
func HashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "Print the hash of a key's long token",
		ArgsUsage: "KEY",
		Flags:     []cli.Flag{digestFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected 1 argument (KEY), got %d", c.NArg())
			}
			svc, err := checkingService(c)
			if err != nil {
				return err
			}

			hash, err := svc.Hash(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			return render(c, hashResult{Hash: hash})
		},
	}
}

// InspectCommand returns the inspect command.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the parts of a key without its long token",
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "expect-prefix",
				Usage: "Prefix the key should carry",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected 1 argument (KEY), got %d", c.NArg())
			}
			rt := getRuntime(c)
			svc, err := service.NewKeyService(rt.cfg.Settings(c.String("expect-prefix")), service.WithLogger(rt.log))
			if err != nil {
				return err
			}

			info, err := svc.Inspect(c.Args().First())
			if err != nil {
				return err
			}
			return render(c, info)
		},
	}
}

// algorithm is one row of digests output.
type algorithm struct {
	Kind    string `json:"kind" yaml:"kind"`
	Name    string `json:"name" yaml:"name"`
	Default bool   `json:"default" yaml:"default"`
}

// DigestsCommand returns the digests command.
func DigestsCommand() *cli.Command {
	return &cli.Command{
		Name:  "digests",
		Usage: "List digest and random source names",
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)

			var rows []algorithm
			for _, name := range pak.DigestNames() {
				rows = append(rows, algorithm{Kind: "digest", Name: name, Default: name == rt.cfg.Digest})
			}
			for _, name := range pak.RandomSourceNames() {
				rows = append(rows, algorithm{Kind: "rng", Name: name, Default: name == rt.cfg.RNG})
			}
			return render(c, rows)
		},
	}
}
