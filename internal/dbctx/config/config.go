// Package config holds the engine's runtime configuration, loaded
// from an ini file and then overlaid with command-line flags.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Config is the engine's full runtime configuration.
type Config struct {
	DataDir  string
	Hostname string
	Port     int

	BufferPoolFrames int

	Verbose bool
	Quiet   bool

	LogLevel string
	LogError string
	LogInfo  string
}

// CommandLineArgs mirrors the flags the CLI accepts.
type CommandLineArgs struct {
	Init     bool
	DataDir  string
	Hostname string
	Port     int
	Verbose  bool
	Quiet    bool
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		DataDir:          "./data",
		Hostname:         "127.0.0.1",
		Port:             5433,
		BufferPoolFrames: 120,
		LogLevel:         "info",
	}
}

// Load overlays an ini file (if it exists at <dataDir>/tinydb.ini)
// onto the config, then applies command-line args on top (flags win).
func (c *Config) Load(args CommandLineArgs) error {
	if args.DataDir != "" {
		c.DataDir = args.DataDir
	}

	iniPath := filepath.Join(c.DataDir, "tinydb.ini")
	if _, err := os.Stat(iniPath); err == nil {
		f, err := ini.Load(iniPath)
		if err != nil {
			return err
		}
		sec := f.Section("tinydb")
		if v := sec.Key("hostname").String(); v != "" {
			c.Hostname = v
		}
		if v, err := sec.Key("port").Int(); err == nil && v != 0 {
			c.Port = v
		}
		if v, err := sec.Key("buffer_pool_frames").Int(); err == nil && v != 0 {
			c.BufferPoolFrames = v
		}
		if v := sec.Key("log_level").String(); v != "" {
			c.LogLevel = v
		}
	}

	if args.Hostname != "" {
		c.Hostname = args.Hostname
	}
	if args.Port != 0 {
		c.Port = args.Port
	}
	c.Verbose = args.Verbose
	c.Quiet = args.Quiet

	if args.Verbose {
		c.LogLevel = "debug"
	}
	if args.Quiet {
		c.LogLevel = "error"
	}

	c.LogError = filepath.Join(c.DataDir, "tinydb.err.log")
	c.LogInfo = filepath.Join(c.DataDir, "tinydb.info.log")

	return nil
}
