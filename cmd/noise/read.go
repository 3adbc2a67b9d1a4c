package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rockts/noise-db-converter/cmd/noise/console"
	"github.com/rockts/noise-db-converter/decibel"
	"github.com/rockts/noise-db-converter/sound"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "read raw, processed and status values once",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "db",
			Usage: "convert the raw sample to dB and dBA",
		},
	}, deviceFlags...),
	Action: func(c *cli.Context) error {
		dev, _, err := openDevice(c)
		if err != nil {
			return err
		}
		defer closeDevice(dev)
		printSample(c.Context, dev, c.Bool("db"))
		return nil
	},
}

var monitorCmd = cli.Command{
	Name:  "monitor",
	Usage: "read the sensor periodically until interrupted",
	Flags: append([]cli.Flag{
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "time between samples",
			Value:   time.Second,
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "stop after this many samples, 0 runs until interrupted",
		},
		&cli.BoolFlag{
			Name:  "db",
			Usage: "convert the raw sample to dB and dBA",
		},
	}, deviceFlags...),
	Action: func(c *cli.Context) error {
		ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		dev, conf, err := openDevice(c)
		if err != nil {
			return err
		}
		defer closeDevice(dev)
		count := c.Int("count")
		ticker := time.NewTicker(conf.Interval)
		defer ticker.Stop()
		for i := 1; ; i++ {
			printSample(ctx, dev, c.Bool("db"))
			console.Printf("%s\n", "--------------------")
			if count > 0 && i >= count {
				return nil
			}
			select {
			case <-ctx.Done():
				console.Infof("stopped")
				return nil
			case <-ticker.C:
			}
		}
	},
}

func printSample(ctx context.Context, dev *sound.Device, db bool) {
	raw := dev.ReadRaw(ctx)
	processed := dev.ReadProcessed(ctx)
	status := dev.ReadStatus(ctx)
	picto := console.PictoSpeaker
	if dev.Simulating() {
		picto = console.PictoGhost
	}
	console.PInfof(picto, "raw: %s processed: %s status: %s (%s)",
		console.White(raw), console.White(processed), console.White(status), mode(dev))
	if db {
		console.PInfof(picto, "%s dB %s dBA",
			console.Bold(formatFloat(decibel.ToDecibel(raw))), console.Bold(formatFloat(decibel.ToDBA(raw))))
	}
	if err := dev.Err(); err != nil && !dev.Simulating() {
		console.Warnf("last read failed: %s", console.Red(err))
	}
}
