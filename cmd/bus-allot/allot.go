// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/someonegg/busmatch/allot"
)

// Result is the content of allotments.json.
type Result struct {
	Summary    allot.Summary      `json:"summary"`
	Buses      []allot.BusUsage   `json:"buses"`
	Allotments []*allot.Allotment `json:"allotments"`
}

var studentColumns = []string{"Name", "Year", "Department", "Choice 1", "Choice 2"}

const (
	studentIDColumn = "ID"
	stopColumn      = "Stoppings"
	seatsColumn     = "Seats Available"
)

func doAllot(ctx context.Context, m *allot.Matcher,
	studentFile string, busFiles []string, outFile string) error {

	students, err := loadStudents(studentFile)
	if err != nil {
		return fmt.Errorf("load student file failed: %w", err)
	}

	buses := make([]*allot.Bus, 0, len(busFiles))
	for _, file := range busFiles {
		bus, err := loadBus(file)
		if err != nil {
			return fmt.Errorf("load bus file %s failed: %w", file, err)
		}
		buses = append(buses, bus)
	}

	allots, usage, summ, err := m.Match(students, buses)
	if err != nil {
		return err
	}
	fmt.Printf("%+v\n", summ)

	err = writeResult(outFile, &Result{Summary: summ, Buses: usage, Allotments: allots})
	if err != nil {
		return fmt.Errorf("write allotment file failed: %w", err)
	}

	return nil
}

func readCSV(file string) (header map[string]int, rows [][]string, err error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, io.ErrUnexpectedEOF
	}

	header = make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}

	return header, records[1:], nil
}

func cell(row []string, header map[string]int, col string) string {
	i, ok := header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func loadStudents(file string) ([]*allot.Student, error) {
	header, rows, err := readCSV(file)
	if err != nil {
		return nil, err
	}

	for _, col := range studentColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("missing required columns: %s", strings.Join(studentColumns, ", "))
		}
	}

	_, hasID := header[studentIDColumn]
	students := make([]*allot.Student, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		line := i + 2
		year, err := strconv.Atoi(cell(row, header, "Year"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid year: %w", line, err)
		}
		// Without an ID column students are numbered 1, 2, ... A blank id in
		// an ID column is named after its row instead.
		id := cell(row, header, studentIDColumn)
		if !hasID {
			id = strconv.Itoa(i + 1)
		} else if id == "" {
			id = "row-" + strconv.Itoa(line)
		}
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("row %d: id %q already used in row %d", line, id, prev)
		}
		seen[id] = line
		students = append(students, &allot.Student{
			ID:         id,
			Name:       cell(row, header, "Name"),
			Year:       year,
			Department: cell(row, header, "Department"),
			Choice1:    allot.Normalize(cell(row, header, "Choice 1")),
			Choice2:    allot.Normalize(cell(row, header, "Choice 2")),
		})
	}

	return students, nil
}

func loadBus(file string) (*allot.Bus, error) {
	header, rows, err := readCSV(file)
	if err != nil {
		return nil, err
	}

	if _, ok := header[stopColumn]; !ok {
		return nil, fmt.Errorf("missing required column: %s", stopColumn)
	}

	bus := &allot.Bus{
		Bus: strings.TrimSuffix(filepath.Base(file), ".csv"),
	}

	for _, row := range rows {
		if stop := allot.Normalize(cell(row, header, stopColumn)); stop != "" {
			bus.Stops = append(bus.Stops, stop)
		}
	}

	// The first row carries the seats, an empty value means none.
	if len(rows) > 0 {
		if seats := cell(rows[0], header, seatsColumn); seats != "" {
			f, err := strconv.ParseFloat(seats, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seats: %w", err)
			}
			bus.Seats = int64(f)
		}
	}

	return bus, nil
}

func writeResult(file string, result *Result) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(result); err != nil {
		return err
	}

	return os.WriteFile(file, buf.Bytes(), 0644)
}

func loadResult(file string) (*Result, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var result Result

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
