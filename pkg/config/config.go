package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// set at build time
var (
	Version = "latest"
	Commit  string
	Date    string
)

const (
	DefaultBus      = 1
	DefaultAddress  = 0x23
	DefaultInterval = time.Second
)

// Address is a 7-bit device address. In YAML it may be written as an
// integer or as a hex string like "0x23".
type Address uint8

func (a *Address) UnmarshalYAML(value *yaml.Node) error {
	v, err := strconv.ParseUint(value.Value, 0, 8)
	if err != nil {
		return fmt.Errorf("invalid address %q at line %d: %w", value.Value, value.Line, err)
	}
	if v > 0x7F {
		return fmt.Errorf("address %#x at line %d is out of the 7-bit range", v, value.Line)
	}
	*a = Address(v)
	return nil
}

func (a Address) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("0x%02x", uint8(a)), nil
}

type Config struct {
	Bus       int           `yaml:"bus"`
	Address   Address       `yaml:"address"`
	ForceReal bool          `yaml:"force_real"`
	Interval  time.Duration `yaml:"interval"`
}

func Default() Config {
	return Config{
		Bus:      DefaultBus,
		Address:  DefaultAddress,
		Interval: DefaultInterval,
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("could not read config file: %w", err)
	}
	err = yaml.Unmarshal(data, &conf)
	if err != nil {
		return conf, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if conf.Interval <= 0 {
		return conf, fmt.Errorf("interval must be positive, got %s", conf.Interval)
	}
	return conf, nil
}
