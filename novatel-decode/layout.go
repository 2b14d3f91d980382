package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes the body of each log that novatel-decode knows how to read.
type Layout struct {
	Logs []LogLayout `yaml:"logs"`
}

// LogLayout is the ordered field list of one log.  Format is "ascii" or "binary".
type LogLayout struct {
	Name   string        `yaml:"name"`
	Format string        `yaml:"format"`
	Fields []FieldLayout `yaml:"fields"`
}

// FieldLayout is one field of a log body.  Base applies to ASCII logs and Offset to binary
// logs; after loading, both are always set.
type FieldLayout struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Base   *int   `yaml:"base"`
	Offset *int   `yaml:"offset"`
}

// fieldTypes maps each field type to its width in a binary log body.  A width of 0 means the
// type only exists in ASCII logs.
var fieldTypes = map[string]int{
	"string":     0,
	"bool":       4,
	"int16":      2,
	"int32":      4,
	"uint8":      1,
	"uint16":     2,
	"uint32":     4,
	"float":      4,
	"double":     8,
	"rxstatus":   4,
	"extsolstat": 1,
	"sigmask":    1,
}

func isStatus(typ string) bool {
	return typ == "rxstatus" || typ == "extsolstat" || typ == "sigmask"
}

// LoadLayout reads and validates a layout file.
func LoadLayout(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseLayout(b)
}

func parseLayout(b []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, err
	}
	if len(l.Logs) == 0 {
		return nil, fmt.Errorf("logs: at least one log is required")
	}

	seen := make(map[string]bool)
	for i := range l.Logs {
		log := &l.Logs[i]
		if log.Name == "" {
			return nil, fmt.Errorf("logs[%d].name is required", i)
		}
		if seen[log.Name] {
			return nil, fmt.Errorf("logs[%d]: duplicate log %q", i, log.Name)
		}
		seen[log.Name] = true

		if log.Format == "" {
			log.Format = "ascii"
		}
		if log.Format != "ascii" && log.Format != "binary" {
			return nil, fmt.Errorf("logs[%d].format must be ascii or binary, got %q", i, log.Format)
		}
		if len(log.Fields) == 0 {
			return nil, fmt.Errorf("logs[%d].fields: at least one field is required", i)
		}

		next := 0
		for j := range log.Fields {
			f := &log.Fields[j]
			path := fmt.Sprintf("logs[%d].fields[%d]", i, j)
			if f.Name == "" {
				return nil, fmt.Errorf("%s.name is required", path)
			}
			width, ok := fieldTypes[f.Type]
			if !ok {
				return nil, fmt.Errorf("%s.type: unknown type %q", path, f.Type)
			}

			if f.Base == nil {
				base := 10
				if isStatus(f.Type) {
					base = 16
				}
				f.Base = &base
			}
			if n := *f.Base; n != 0 && (n < 2 || n > 36) {
				return nil, fmt.Errorf("%s.base must be 0 or between 2 and 36, got %d", path, n)
			}

			if log.Format == "binary" && width == 0 {
				return nil, fmt.Errorf("%s.type: %s fields cannot appear in binary logs", path, f.Type)
			}
			if f.Offset == nil {
				offset := next
				f.Offset = &offset
			}
			if *f.Offset < 0 {
				return nil, fmt.Errorf("%s.offset must be >= 0, got %d", path, *f.Offset)
			}
			next = *f.Offset + width
		}
	}
	return &l, nil
}

// Log returns the layout of the named log.
func (l *Layout) Log(name string) (*LogLayout, bool) {
	for i := range l.Logs {
		if l.Logs[i].Name == name {
			return &l.Logs[i], true
		}
	}
	return nil, false
}
