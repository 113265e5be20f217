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
	"github.com/wcgcyx/journaldb/journal"
	"github.com/wcgcyx/journaldb/trienode"
)

func runDump(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	store, err := openBackingStore(c.Context, conf)
	if err != nil {
		return err
	}
	defer store.Shutdown()

	seq, err := store.GetCommitSeq()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Commits: %v\n", seq)

	j, err := journal.NewJournal(store, journal.Opts{})
	if err != nil {
		return err
	}
	return j.Print(func(line string) {
		fmt.Fprintln(c.App.Writer, line)
	}, trienode.Describe)
}
