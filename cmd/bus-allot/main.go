package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bus-allot",
		Usage: "Utility for allotting students to buses by their stop choices",
		Commands: []*cli.Command{
			allotCmd,
			filterCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var allotCmd = &cli.Command{
	Name:    "allot",
	Usage:   "Allot students to buses",
	Aliases: []string{"a"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "students",
			Required: true,
			Usage:    "specify the input students.csv",
		},
		&cli.StringSliceFlag{
			Name:     "bus",
			Required: true,
			Usage:    "specify an input bus csv, the file name is the bus name (repeatable)",
		},
		&cli.StringFlag{
			Name:     "out",
			Required: true,
			Usage:    "specify the output allotments.json",
		},
		&cli.StringFlag{
			Name:     "config",
			Required: false,
			Usage:    "specify the matcher config.yaml",
		},
		&cli.IntSliceFlag{
			Name:     "threshold",
			Required: false,
			Usage:    "specify a similarity threshold (0-100), repeat to relax, strictly decreasing",
		},
		&cli.IntFlag{
			Name:     "suggestions",
			Required: false,
			Value:    -1,
			Usage:    "specify how many stops to suggest to unallotted students",
		},
		&cli.BoolFlag{
			Name:     "verbose",
			Required: false,
			Usage:    "print every allocation step",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			studentFile = ctx.String("students")
			busFiles    = ctx.StringSlice("bus")
			outFile     = ctx.String("out")
			configFile  = ctx.String("config")
			thresholds  = ctx.IntSlice("threshold")
			suggestions = ctx.Int("suggestions")
		)

		m, err := loadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config file failed: %w", err)
		}
		if len(thresholds) > 0 {
			m.Thresholds = thresholds
		}
		if suggestions >= 0 {
			m.SuggestionCount = &suggestions
		}
		if ctx.IsSet("verbose") {
			m.Verbose = ctx.Bool("verbose")
		}
		if len(busFiles) == 0 {
			return errors.New("no bus file")
		}

		return doAllot(ctx.Context, m, studentFile, busFiles, outFile)
	},
}

var filterCmd = &cli.Command{
	Name:    "filter",
	Usage:   "Filter an allotments.json and export the rows as csv",
	Aliases: []string{"f"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "in",
			Required: true,
			Usage:    "specify the input allotments.json",
		},
		&cli.StringFlag{
			Name:     "out",
			Required: false,
			Usage:    "specify the output csv, stdout if omitted",
		},
		&cli.IntSliceFlag{
			Name:  "year",
			Usage: "keep students of the year (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "dept",
			Usage: "keep students of the department (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "bus",
			Usage: "keep students allotted to the bus, None for unallotted (repeatable)",
		},
		&cli.StringFlag{
			Name:  "stop",
			Usage: "keep students whose allotted stop contains the text",
		},
		&cli.BoolFlag{
			Name:  "unallotted",
			Usage: "keep only unallotted students",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "print the bus capacity summary",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			inFile  = ctx.String("in")
			outFile = ctx.String("out")
			summary = ctx.Bool("summary")
		)
		f := filterOf(ctx)
		return doFilter(ctx.Context, inFile, outFile, f, summary)
	},
}
