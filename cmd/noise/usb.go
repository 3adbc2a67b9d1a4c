package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/karalabe/hid"
	"github.com/urfave/cli/v2"

	"github.com/rockts/noise-db-converter/cmd/noise/console"
)

var usbCmd = cli.Command{
	Name:  "usb",
	Usage: "inspect usb devices",
	Subcommands: cli.Commands{
		&usbLsCmd,
	},
}

// usbLsCmd helps locating usb-to-i2c bridges the sensor may be attached to.
var usbLsCmd = cli.Command{
	Name:  "ls",
	Usage: "list usb hid devices",
	Action: func(c *cli.Context) error {
		if !hid.Supported() {
			return console.Exit(1, "usb hid enumeration is not supported on this platform")
		}
		devices := hid.Enumerate(0, 0)

		w := tabwriter.NewWriter(console.Writer(), 24, 0, 1, ' ', 0)
		_, _ = fmt.Fprintf(w, "PATH\tSERIAL\tVENDOR\tPRODUCT ID\tMANUFACTURER\tPRODUCT\n")

		for _, dev := range devices {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%#x\t%#x\t%s\t%s\n",
				dev.Path, dev.Serial, dev.VendorID, dev.ProductID, dev.Manufacturer, dev.Product)
		}
		_ = w.Flush()
		return nil
	},
}
