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
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"github.com/wcgcyx/journaldb/journal"
)

func runReplay(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expect 1 script argument, got %v", c.NArg())
	}
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()
	ops, err := parseScript(f)
	if err != nil {
		return err
	}

	store, err := openBackingStore(c.Context, conf)
	if err != nil {
		return err
	}
	defer store.Shutdown()

	j, err := journal.NewJournal(store, journal.Opts{
		InitialCapacity:    conf.JournalInitialCapacity,
		PreserveCacheReads: conf.PreserveCacheReads,
		Registerer:         prometheus.DefaultRegisterer,
	})
	if err != nil {
		return err
	}
	log.Infof("Replay %v operations", len(ops))
	err = runScript(j, ops, func(line string) {
		fmt.Fprintln(c.App.Writer, line)
	})
	if err != nil {
		return err
	}
	if j.Pending() > 0 {
		log.Warnf("Script ends with %v keys uncommitted, discarded", j.Pending())
	}
	return nil
}
