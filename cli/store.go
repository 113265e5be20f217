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
	"context"
	"fmt"

	logging "github.com/ipfs/go-log"
	"github.com/urfave/cli/v2"
	"github.com/wcgcyx/journaldb/backing"
	"github.com/wcgcyx/journaldb/config"
)

// Logger
var log = logging.Logger("cli")

// loadConfig loads the configuration and applies command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.NewConfig(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("path") {
		log.Infof("Override path to be %v", c.String("path"))
		conf.Path = c.String("path")
	}
	if c.IsSet("backend") {
		log.Infof("Override backend to be %v", c.String("backend"))
		conf.Backend = c.String("backend")
	}
	if c.IsSet("preserve-cache-reads") {
		log.Infof("Override preserve-cache-reads to be %v", c.Bool("preserve-cache-reads"))
		conf.PreserveCacheReads = c.Bool("preserve-cache-reads")
	}
	return conf, nil
}

// openBackingStore opens the backing store described by given configuration.
func openBackingStore(ctx context.Context, conf config.Config) (backing.BackingStore, error) {
	opts := backing.Opts{
		Path:         conf.Path,
		CacheSize:    conf.CacheSize,
		GCPeriod:     conf.GCPeriod,
		ReadTimeout:  conf.DSTimeout,
		WriteTimeout: conf.DSTimeout,
	}
	switch conf.Backend {
	case config.BackendMemory:
		log.Infof("Start in-memory backing store...")
		return backing.NewMemoryBacking(ctx, opts)
	case config.BackendBadger:
		log.Infof("Start backing store at %v...", conf.Path)
		return backing.NewDatastoreBacking(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported backend %v", conf.Backend)
	}
}
