package main

import (
	"strconv"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/rockts/noise-db-converter/cmd/noise/console"
	"github.com/rockts/noise-db-converter/decibel"
)

type conversion struct {
	ADC     string   `yaml:"adc"`
	Voltage *float64 `yaml:"voltage,omitempty"`
	DB      *float64 `yaml:"db,omitempty"`
	DBA     *float64 `yaml:"dba,omitempty"`
}

var convertCmd = cli.Command{
	Name:      "convert",
	Aliases:   []string{"conv"},
	Usage:     "convert ADC samples (0-4095) to sound levels",
	ArgsUsage: "<adc>...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "formula",
			Aliases: []string{"f"},
			Usage:   "db, dba or both",
			Value:   "both",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "text or yaml",
			Value: "text",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return console.Exit(1, "expected at least 1 argument")
		}
		formula := c.String("formula")
		switch formula {
		case "db", "dba", "both":
		default:
			return console.Exit(1, "unknown formula %q", formula)
		}
		results := make([]conversion, 0, c.NArg())
		for _, arg := range c.Args().Slice() {
			results = append(results, convert(arg, formula, console.IsVerbose(c.Context)))
		}
		switch c.String("format") {
		case "yaml":
			enc := yaml.NewEncoder(console.Writer())
			defer func() { _ = enc.Close() }()
			err := enc.Encode(results)
			if err != nil {
				return console.Exit(1, "encoding error: %s", console.Red(err))
			}
		case "text":
			for _, r := range results {
				printConversion(r)
			}
		default:
			return console.Exit(1, "unknown format %q", c.String("format"))
		}
		return nil
	},
}

func convert(arg, formula string, withVoltage bool) conversion {
	res := conversion{ADC: arg}
	if withVoltage {
		if adc, err := strconv.ParseFloat(arg, 64); err == nil {
			v := decibel.Voltage(adc)
			res.Voltage = &v
		}
	}
	if formula != "dba" {
		db := decibel.ToDecibel(arg)
		res.DB = &db
	}
	if formula != "db" {
		dba := decibel.ToDBA(arg)
		res.DBA = &dba
	}
	return res
}

func printConversion(r conversion) {
	line := "adc " + console.White(r.ADC)
	if r.Voltage != nil {
		line += " " + formatFloat(*r.Voltage) + " V"
	}
	if r.DB != nil {
		line += " " + console.Bold(formatFloat(*r.DB)) + " dB"
	}
	if r.DBA != nil {
		line += " " + console.Bold(formatFloat(*r.DBA)) + " dBA"
	}
	console.Printf("%s\n", line)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
