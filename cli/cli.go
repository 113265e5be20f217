package cli

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/wcgcyx/journaldb/version"
)

// NewCLI creates a CLI app.
func NewCLI() *cli.App {
	app := &cli.App{
		Name:      "journaldb",
		HelpName:  "journaldb",
		Usage:     "A snapshot-capable key-value journal for EVM world state",
		UsageText: "journaldb [global options] command [arguments...]",
		Version:   version.Version,
		Description: "\n\t A transactional key-value journal in front of a committed\n" +
			"\t backing store.\n\n" +
			"\t Changes are journaled with O(1) snapshots, rolled back on revert\n" +
			"\t and flushed to the backing store on commit\n",
		Authors: []*cli.Author{
			{
				Name:  "wcgcyx",
				Email: "wcgcyx@gmail.com",
			},
		},
	}
	storeFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "",
			Usage: "specify config file",
		},
		&cli.PathFlag{
			Name:  "path",
			Value: "",
			Usage: "specify datastore path",
		},
		&cli.StringFlag{
			Name:  "backend",
			Value: "badger",
			Usage: "specify the backing store [memory,badger]",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:        "dump",
			Usage:       "print committed entries",
			Description: "Print every committed entry of the backing store",
			ArgsUsage:   " ",
			Flags:       storeFlags,
			Action: func(c *cli.Context) error {
				return runDump(c)
			},
		},
		{
			Name:        "replay",
			Usage:       "replay an operation script",
			Description: "Replay an operation script through a journal in front of the backing store",
			ArgsUsage:   "<script>",
			Flags: append(storeFlags,
				&cli.BoolFlag{
					Name:  "preserve-cache-reads",
					Value: false,
					Usage: "keep lone cache reads across restores",
				},
			),
			Action: func(c *cli.Context) error {
				return runReplay(c)
			},
		},
		{
			Name:        "version",
			Usage:       "get version",
			Description: "Get the version",
			ArgsUsage:   " ",
			Action: func(c *cli.Context) error {
				fmt.Println("Version: ", version.Version)
				return nil
			},
		},
	}
	return app
}
