// Pow-config administers the proof-of-work difficulty policy: branch
// overrides, pattern defaults, and the global fallback.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"git3/pkg/config"
	"git3/pkg/policy"
)

func main() {
	app := &cli.App{
		Name:  "pow-config",
		Usage: "configure proof-of-work difficulty policy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "git-dir", Value: ".git3", Usage: "repository metadata directory"},
		},
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"l"},
				Usage:     "list the configured or built-in difficulty for every pattern and branch override",
				Action:    runList,
			},
			{
				Name:      "set",
				Usage:     "set the difficulty for a branch",
				ArgsUsage: "<branch> <bits>",
				Action:    runSetBranch,
			},
			{
				Name:      "unset",
				Aliases:   []string{"u"},
				Usage:     "remove a branch's difficulty override",
				ArgsUsage: "<branch>",
				Action:    runUnset,
			},
			{
				Name:      "set-default",
				Aliases:   []string{"d"},
				Usage:     "set the fallback difficulty used when no pattern matches",
				ArgsUsage: "<bits>",
				Action:    runSetDefault,
			},
			{
				Name:      "set-pattern",
				Usage:     "set the difficulty for a recognized branch pattern (dev, feature, main, release, default)",
				ArgsUsage: "<pattern> <bits>",
				Action:    runSetPattern,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openStore(c *cli.Context) (*config.Store, error) {
	return config.Open(c.String("git-dir") + "/pow-config.toml")
}

func runList(c *cli.Context) error {
	cfg, err := openStore(c)
	if err != nil {
		return err
	}
	admin := policy.NewAdmin(cfg)

	fmt.Println("Proof-of-work difficulty configuration")
	fmt.Println("=======================================")
	for _, l := range admin.List() {
		origin := "default"
		if l.Overridden {
			origin = "override"
		}
		fmt.Printf("  %-24s %3d bits  (%s)\n", l.Name, l.Difficulty, origin)
	}
	return nil
}

func runSetBranch(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: pow-config set <branch> <bits>", 1)
	}
	bits, err := parseBits(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}

	cfg, err := openStore(c)
	if err != nil {
		return err
	}
	admin := policy.NewAdmin(cfg)
	branch := c.Args().Get(0)
	if err := admin.SetBranch(branch, bits); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("set PoW difficulty for branch %q to %d bits\n", branch, bits)
	return nil
}

func runUnset(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: pow-config unset <branch>", 1)
	}
	cfg, err := openStore(c)
	if err != nil {
		return err
	}
	admin := policy.NewAdmin(cfg)
	branch := c.Args().Get(0)
	if err := admin.UnsetBranch(branch); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("removed PoW difficulty configuration for branch %q\n", branch)
	return nil
}

func runSetDefault(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: pow-config set-default <bits>", 1)
	}
	bits, err := parseBits(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}
	cfg, err := openStore(c)
	if err != nil {
		return err
	}
	admin := policy.NewAdmin(cfg)
	if err := admin.SetDefault(bits); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("set default PoW difficulty to %d bits\n", bits)
	return nil
}

func runSetPattern(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: pow-config set-pattern <pattern> <bits>", 1)
	}
	bits, err := parseBits(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}
	cfg, err := openStore(c)
	if err != nil {
		return err
	}
	admin := policy.NewAdmin(cfg)
	pattern := c.Args().Get(0)
	if err := admin.SetPattern(pattern, bits); err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Printf("set PoW difficulty for pattern %q to %d bits\n", pattern, bits)
	return nil
}

func parseBits(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid difficulty %q: %w", s, err)
	}
	return uint32(v), nil
}
