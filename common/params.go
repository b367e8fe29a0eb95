package common

import (
	"flag"
	"time"
)

type Params struct {
	configFile string
	logLevel   string
	interval   time.Duration
}

func NewEmptyParams() *Params {
	return &Params{
		configFile: "",
		logLevel:   "",
		interval:   0,
	}
}

func ParseParams() *Params {
	configFile := flag.String("config", "", "Path to the device config TOML. Defaults to ./photo-frame.toml")
	logLevel := flag.String("logLevel", "INFO", "Log level: ERROR, WARN, INFO, DEBUG, TRACE")
	interval := flag.Duration("interval", 0, "Refresh interval, e.g. 30m. Zero runs a single refresh and exits.")

	flag.Parse()

	return &Params{
		configFile: *configFile,
		logLevel:   *logLevel,
		interval:   *interval,
	}
}

func (s *Params) ConfigFile() string {
	return s.configFile
}

func (s *Params) LogLevel() string {
	return s.logLevel
}

func (s *Params) Interval() time.Duration {
	return s.interval
}
