// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/someonegg/busmatch/allot"
)

var exportColumns = []string{"Name", "Year", "Department", "Choice 1", "Choice 2", "Bus", "Stop"}

func filterOf(ctx *cli.Context) allot.Filter {
	return allot.Filter{
		Years:          ctx.IntSlice("year"),
		Departments:    ctx.StringSlice("dept"),
		Buses:          ctx.StringSlice("bus"),
		StopContains:   ctx.String("stop"),
		UnallottedOnly: ctx.Bool("unallotted"),
	}
}

func doFilter(ctx context.Context, inFile, outFile string, f allot.Filter, summary bool) error {
	result, err := loadResult(inFile)
	if err != nil {
		return fmt.Errorf("load allotment file failed: %w", err)
	}

	allots := f.Apply(result.Allotments)

	var w io.Writer = os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create export file failed: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := exportCSV(w, allots); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if summary {
		printUsage(os.Stdout, result.Buses)
	}

	return nil
}

func exportCSV(w io.Writer, allots []*allot.Allotment) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportColumns); err != nil {
		return err
	}

	for _, a := range allots {
		err := writer.Write([]string{
			a.Name,
			strconv.Itoa(a.Year),
			a.Department,
			a.Choice1,
			a.Choice2,
			allot.BusName(a),
			allot.StopName(a),
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func printUsage(w io.Writer, usage []allot.BusUsage) {
	fmt.Fprintln(w, "bus", "total_seats", "allotted_count", "remaining_seats")
	for _, u := range usage {
		fmt.Fprintln(w, u.Bus, u.TotalSeats, u.Allotted, u.Remaining)
	}
}
