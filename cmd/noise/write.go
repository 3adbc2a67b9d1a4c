package main

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/rockts/noise-db-converter/cmd/noise/console"
	"github.com/rockts/noise-db-converter/sound"
)

var confirmFlag = &cli.BoolFlag{
	Name:    "yes",
	Aliases: []string{"y"},
	Usage:   "do not ask for confirmation",
}

var setCmd = cli.Command{
	Name:      "set",
	Usage:     "write the device parameter (0-100)",
	ArgsUsage: "<value>",
	Flags:     append([]cli.Flag{confirmFlag}, deviceFlags...),
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return console.Exit(1, "expected 1 argument, got %d", c.NArg())
		}
		value, err := strconv.Atoi(c.Args().Get(0))
		if err != nil {
			return console.Exit(1, "could not parse parameter value: %v", err)
		}
		clamped := sound.ClampParameter(value)
		if clamped != value {
			console.Warnf("parameter %d out of range, using %d", value, clamped)
		}
		dev, _, err := openDevice(c)
		if err != nil {
			return err
		}
		defer closeDevice(dev)
		if !confirm(c, dev, "write parameter "+strconv.Itoa(clamped)+"?") {
			return nil
		}
		dev.SetParameter(c.Context, clamped)
		return report(dev, "parameter set to %s", console.White(clamped))
	},
}

var actionCmd = cli.Command{
	Name:  "action",
	Usage: "trigger the device action",
	Flags: append([]cli.Flag{confirmFlag}, deviceFlags...),
	Action: func(c *cli.Context) error {
		dev, _, err := openDevice(c)
		if err != nil {
			return err
		}
		defer closeDevice(dev)
		if !confirm(c, dev, "trigger device action?") {
			return nil
		}
		dev.PerformAction(c.Context)
		return report(dev, "action triggered")
	},
}

// confirm asks before writing to real hardware.
func confirm(c *cli.Context, dev *sound.Device, question string) bool {
	if c.Bool("yes") || dev.Simulating() {
		return true
	}
	ok, err := console.Confirm(question)
	if err != nil {
		console.Errorf("could not read answer: %s", console.Red(err))
		return false
	}
	return ok
}

func report(dev *sound.Device, msg string, args ...interface{}) error {
	if err := dev.Err(); err != nil && !dev.Simulating() {
		return console.Exit(1, "write failed: %s", console.Red(err))
	}
	if dev.Simulating() {
		console.PInfof(console.PictoMute, "simulated device, nothing written")
		return nil
	}
	console.Infof(msg, args...)
	return nil
}
