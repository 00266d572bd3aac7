package main

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/someonegg/busmatch/allot"
)

// loadConfig reads the matcher options, an empty file name yields the
// defaults.
//
//	thresholds: [85, 70]
//	suggestions: 3
//	verbose: false
//	overrides:
//	  - a: mg road
//	    b: mahatma gandhi road
//	    score: 100
func loadConfig(file string) (*allot.Matcher, error) {
	m := &allot.Matcher{}
	if file == "" {
		return m, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return m, nil
}
