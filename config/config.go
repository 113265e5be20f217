package config

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
	"os"
	"path/filepath"
	"time"

	logging "github.com/ipfs/go-log"
	"github.com/spf13/viper"
)

// Logger
var log = logging.Logger("config")

const (
	defaultConfigPath = ".journaldb"

	// Supported backends
	BackendMemory = "memory"
	BackendBadger = "badger"
)

type Config struct {
	// Global
	GlobalLoggingLevel string        `mapstructure:"LOGGING"`    // Log Level: FATAL, PANIC, ERROR, WARN, INFO, DEBUG.
	Path               string        `mapstructure:"DATA_DIR"`   // Main datastore path.
	Backend            string        `mapstructure:"BACKEND"`    // Backing store: memory, badger.
	DSTimeout          time.Duration `mapstructure:"DS_TIMEOUT"` // Datastore timeout.

	// Backing
	GCPeriod  time.Duration `mapstructure:"GC_PERIOD"`  // Badger value log GC period.
	CacheSize int           `mapstructure:"CACHE_SIZE"` // Backing read cache size, 0 to disable.

	// Journal
	JournalInitialCapacity int  `mapstructure:"JOURNAL_INITIAL_CAPACITY"` // Initial capacity of the change log.
	PreserveCacheReads     bool `mapstructure:"PRESERVE_CACHE_READS"`     // Keep lone cache reads across restores.
}

// Default configs
var DefaultConfig Config = Config{
	GlobalLoggingLevel:     "INFO",
	Path:                   filepath.Join(defaultConfigPath, "data"),
	Backend:                BackendBadger,
	DSTimeout:              5 * time.Second,
	GCPeriod:               30 * time.Minute,
	CacheSize:              4096,
	JournalInitialCapacity: 1024,
	PreserveCacheReads:     false,
}

// NewConfig creates a new configuration.
//
// @input - config file, empty to use $HOME/.journaldb/config.yaml if present.
//
// @output - configuration, error.
func NewConfig(configFile string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/" + defaultConfigPath)
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	v.AutomaticEnv()
	err := v.ReadInConfig()
	if err != nil {
		if configFile != "" {
			return Config{}, err
		}
		log.Infof("No config file loaded: %v", err.Error())
	}

	conf := Config{}

	// Parse global config
	conf.GlobalLoggingLevel = v.GetString("LOGGING")
	if conf.GlobalLoggingLevel == "" {
		conf.GlobalLoggingLevel = DefaultConfig.GlobalLoggingLevel
	}
	logLevel, err := logging.LevelFromString(conf.GlobalLoggingLevel)
	if err != nil {
		return Config{}, err
	}
	logging.SetAllLoggers(logLevel)
	conf.Path = v.GetString("DATA_DIR")
	if conf.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		conf.Path = filepath.Join(home, DefaultConfig.Path)
		log.Infof("DATA_DIR not defined, use default: %v", conf.Path)
	}
	conf.Backend = v.GetString("BACKEND")
	if conf.Backend != BackendMemory && conf.Backend != BackendBadger {
		log.Infof("Unsupported BACKEND %q, use default: %v", conf.Backend, DefaultConfig.Backend)
		conf.Backend = DefaultConfig.Backend
	}
	conf.DSTimeout = v.GetDuration("DS_TIMEOUT")
	if conf.DSTimeout <= 0 {
		conf.DSTimeout = DefaultConfig.DSTimeout
		log.Infof("Invalid DS_TIMEOUT found, use default: %v", conf.DSTimeout)
	}

	// Parse backing config
	conf.GCPeriod = v.GetDuration("GC_PERIOD")
	if conf.GCPeriod < time.Minute {
		conf.GCPeriod = DefaultConfig.GCPeriod
		log.Infof("GC_PERIOD is smaller than min 1m, use default %v", conf.GCPeriod)
	}
	if v.IsSet("CACHE_SIZE") {
		conf.CacheSize = v.GetInt("CACHE_SIZE")
	} else {
		conf.CacheSize = DefaultConfig.CacheSize
		log.Infof("CACHE_SIZE not defined, use default: %v", conf.CacheSize)
	}
	if conf.CacheSize < 0 {
		conf.CacheSize = 0
		log.Infof("Negative CACHE_SIZE found, disable read cache")
	}

	// Parse journal config
	conf.JournalInitialCapacity = v.GetInt("JOURNAL_INITIAL_CAPACITY")
	if conf.JournalInitialCapacity <= 0 {
		conf.JournalInitialCapacity = DefaultConfig.JournalInitialCapacity
		log.Infof("Invalid JOURNAL_INITIAL_CAPACITY found, use default: %v", conf.JournalInitialCapacity)
	}
	conf.PreserveCacheReads = v.GetBool("PRESERVE_CACHE_READS")

	return conf, nil
}
