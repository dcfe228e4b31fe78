// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads the tptpc configuration file and holds the option
// values that problems set through vampire(option, ...) directives.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// File is the YAML configuration file. Every field is optional and command
// line flags take precedence.
type File struct {
	Roots             []string          `yaml:"roots"`
	TimeLimit         time.Duration     `yaml:"time_limit"`
	ForbiddenIncludes []string          `yaml:"forbidden_includes"`
	FilterReserved    bool              `yaml:"filter_reserved"`
	CollectSources    bool              `yaml:"collect_sources"`
	LogLevel          string            `yaml:"log_level"`
	Format            string            `yaml:"format"`
	MaxConcurrency    int               `yaml:"max_concurrency"`
	Options           map[string]string `yaml:"options"`
}

// Load decodes a configuration. Unknown keys are an error. An empty input is
// an empty configuration.
func Load(r io.Reader) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	f, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *File) Validate() error {
	switch f.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", f.Format)
	}
	if f.LogLevel != "" {
		if _, err := log.ParseLevel(f.LogLevel); err != nil {
			return err
		}
	}
	if f.TimeLimit < 0 {
		return fmt.Errorf("negative time limit %s", f.TimeLimit)
	}
	if f.MaxConcurrency < 0 {
		return fmt.Errorf("negative max_concurrency %d", f.MaxConcurrency)
	}
	for name := range f.Options {
		if err := checkOptionName(name); err != nil {
			return err
		}
	}
	return nil
}
