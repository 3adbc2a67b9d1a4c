package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/rockts/noise-db-converter/cmd/noise/console"
	"github.com/rockts/noise-db-converter/pkg/config"
	"github.com/rockts/noise-db-converter/sound"
)

var deviceFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "bus",
		Aliases: []string{"b"},
		Usage:   "i2c bus number",
		Value:   config.DefaultBus,
	},
	&cli.StringFlag{
		Name:    "addr",
		Aliases: []string{"a"},
		Usage:   "device address",
		Value:   "0x23",
	},
	&cli.BoolFlag{
		Name:  "force-real",
		Usage: "fail instead of simulating data when no device is found",
	},
}

// loadConfig reads the configuration file and applies the flags explicitly
// set on the command line.
func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return conf, err
	}
	if c.IsSet("bus") {
		conf.Bus = c.Int("bus")
	}
	if c.IsSet("addr") {
		addr, err := strconv.ParseUint(c.String("addr"), 0, 7)
		if err != nil {
			return conf, fmt.Errorf("invalid device address %q: %w", c.String("addr"), err)
		}
		conf.Address = config.Address(addr)
	}
	if c.IsSet("force-real") {
		conf.ForceReal = c.Bool("force-real")
	}
	if c.IsSet("interval") {
		conf.Interval = c.Duration("interval")
		if conf.Interval <= 0 {
			return conf, fmt.Errorf("interval must be positive, got %s", conf.Interval)
		}
	}
	return conf, nil
}

func openDevice(c *cli.Context) (*sound.Device, config.Config, error) {
	conf, err := loadConfig(c)
	if err != nil {
		return nil, conf, console.Exit(1, "configuration error: %s", console.Red(err))
	}
	dev, err := sound.New(c.Context,
		sound.WithBus(conf.Bus),
		sound.WithAddress(byte(conf.Address)),
		sound.WithForceReal(conf.ForceReal),
	)
	if err != nil {
		return nil, conf, console.Exit(1, "device initialization error: %s", console.Red(err))
	}
	if !dev.Begin(c.Context) {
		_ = dev.Close()
		return nil, conf, console.Exit(1, "device initialization error: %s", console.Red(dev.Err()))
	}
	return dev, conf, nil
}

func closeDevice(dev *sound.Device) {
	err := dev.Close()
	if err != nil {
		console.Errorf("error closing device: %s", console.Red(err))
	}
}

func mode(dev *sound.Device) string {
	if dev.Simulating() {
		return console.Yellow("simulated")
	}
	return console.Green(dev.Backend().String())
}
