package config

import (
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"dexrr/internal/domain"
	"dexrr/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var configTemplate = `# config.yaml

# Catalog language
# Entries and chapters are requested in this translated language
#
# Default: "en"
#
language: "en"

# Content filters
# These are applied to every listing and search request
#
filters:
  # Cover quality suffix
  #
  # Default: "" (original quality)
  #
  # Options: "", ".512.jpg", ".256.jpg"
  #
  coverQuality: ""

  # Data saver
  # Enables smaller, more compressed page images
  #
  # Default: false
  #
  dataSaver: false

  # Use HTTPS port 443 only
  # Ask the image server assignment to only hand out hosts on port 443,
  # useful behind strict firewalls
  #
  # Default: false
  #
  port443Only: false

  # Content rating tiers
  #
  safe: true
  suggestive: true
  erotica: false
  pornographic: false

  # Origin languages
  #
  japanese: true
  chinese: true
  korean: true

# dexrr logs file
# If not defined, logs to stdout
# Make sure to use forward slashes and include the filename with extension. e.g. "logs/dexrr.log", "C:/dexrr/logs/dexrr.log"
#
# Optional
#
#logPath: ""

# Log level
#
# Default: "DEBUG"
#
# Options: "ERROR", "DEBUG", "INFO", "WARN", "TRACE"
#
logLevel: "DEBUG"

# Log Max Size
#
# Default: 50
#
# Max log size in megabytes
#
#logMaxSize: 50

# Log Max Backups
#
# Default: 3
#
# Max amount of old log files
#
#logMaxBackups: 3
`

func (c *AppConfig) writeConfig(configPath string, configFile string) error {
	cfgPath := filepath.Join(configPath, configFile)

	// check if configPath exists, if not create it
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		err := os.MkdirAll(configPath, os.ModePerm)
		if err != nil {
			log.Println(err)
			return err
		}
	}

	// check if config exists, if not create it
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {

		f, err := os.Create(cfgPath)
		if err != nil { // perm 0666
			// handle failed create
			log.Printf("error creating file: %q", err)
			return err
		}
		defer f.Close()

		if _, err = f.WriteString(configTemplate); err != nil {
			log.Printf("error writing contents to file: %v %q", configPath, err)
			return err
		}

		return f.Sync()
	}

	return nil
}

type Config interface {
	Filters() domain.FilterPrefs
	UpdateFilters(update func(*domain.FilterPrefs)) domain.FilterPrefs
	DynamicReload(log logger.Logger)
}

type AppConfig struct {
	Config *domain.Config
	m      sync.RWMutex
}

func New(configPath string, version string) *AppConfig {
	c := &AppConfig{}
	c.defaults()
	c.Config = &domain.Config{
		Version:    version,
		ConfigPath: configPath,
	}

	c.load(configPath)
	c.loadFromEnv()

	return c
}

func (c *AppConfig) defaults() {
	filters := domain.DefaultFilterPrefs()

	viper.SetDefault("language", "en")
	viper.SetDefault("filters.coverQuality", filters.CoverQuality)
	viper.SetDefault("filters.dataSaver", filters.DataSaver)
	viper.SetDefault("filters.port443Only", filters.Port443Only)
	viper.SetDefault("filters.safe", filters.Safe)
	viper.SetDefault("filters.suggestive", filters.Suggestive)
	viper.SetDefault("filters.erotica", filters.Erotica)
	viper.SetDefault("filters.pornographic", filters.Pornographic)
	viper.SetDefault("filters.japanese", filters.Japanese)
	viper.SetDefault("filters.chinese", filters.Chinese)
	viper.SetDefault("filters.korean", filters.Korean)
	viper.SetDefault("logPath", "")
	viper.SetDefault("logLevel", "DEBUG")
	viper.SetDefault("logMaxSize", 50)
	viper.SetDefault("logMaxBackups", 3)
}

func (c *AppConfig) loadFromEnv() {
	prefix := "DEXRR__"

	envs := os.Environ()
	for _, env := range envs {
		if strings.HasPrefix(env, prefix) {
			envPair := strings.SplitN(env, "=", 2)

			if envPair[1] != "" {
				switch envPair[0] {
				case prefix + "LANGUAGE":
					c.Config.Language = envPair[1]
				case prefix + "COVER_QUALITY":
					c.Config.Filters.CoverQuality = envPair[1]
				case prefix + "DATA_SAVER":
					if b, err := strconv.ParseBool(envPair[1]); err == nil {
						c.Config.Filters.DataSaver = b
					}
				case prefix + "PORT_443_ONLY":
					if b, err := strconv.ParseBool(envPair[1]); err == nil {
						c.Config.Filters.Port443Only = b
					}
				case prefix + "LOG_LEVEL":
					c.Config.LogLevel = envPair[1]
				case prefix + "LOG_PATH":
					c.Config.LogPath = envPair[1]
				case prefix + "LOG_MAX_SIZE":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.LogMaxSize = int(i)
					}
				case prefix + "LOG_MAX_BACKUPS":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.LogMaxBackups = int(i)
					}
				}
			}
		}
	}
}

func (c *AppConfig) load(configPath string) {
	viper.SetConfigType("yaml")

	// clean trailing slash from configPath
	configPath = path.Clean(configPath)
	if configPath != "" && configPath != "." {
		// check if path and file exists
		// if not, create path and file
		if err := c.writeConfig(configPath, "config.yaml"); err != nil {
			log.Printf("write error: %q", err)
		}

		viper.SetConfigFile(path.Join(configPath, "config.yaml"))
	} else {
		viper.SetConfigName("config")

		// Search config in directories
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/dexrr")
		viper.AddConfigPath("$HOME/.dexrr")
	}

	// read config
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("config read error: %q", err)
	}

	if err := viper.Unmarshal(c.Config); err != nil {
		log.Fatalf("Could not unmarshal config file: %v: err %q", viper.ConfigFileUsed(), err)
	}
}

func (c *AppConfig) DynamicReload(log logger.Logger) {
	viper.WatchConfig()

	viper.OnConfigChange(func(_ fsnotify.Event) {
		c.m.Lock()
		defer c.m.Unlock()

		logLevel := viper.GetString("logLevel")
		c.Config.LogLevel = logLevel
		log.SetLogLevel(c.Config.LogLevel)

		logPath := viper.GetString("logPath")
		c.Config.LogPath = logPath

		log.Debug().Msg("config file reloaded!")
	})
}

// Filters returns a copy of the current filter preferences. Request building
// reads these on every call, so lookups only take the read lock.
func (c *AppConfig) Filters() domain.FilterPrefs {
	c.m.RLock()
	defer c.m.RUnlock()

	return c.Config.Filters
}

// UpdateFilters is the single mutation funnel for filter preferences. The
// callback mutates the current preferences in place; the updated copy is
// returned.
func (c *AppConfig) UpdateFilters(update func(*domain.FilterPrefs)) domain.FilterPrefs {
	c.m.Lock()
	defer c.m.Unlock()

	update(&c.Config.Filters)

	return c.Config.Filters
}
