package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadLayout(t *testing.T) {
	l, err := LoadLayout("layouts.yaml")
	if err != nil {
		t.Fatalf("load layouts.yaml: %v", err)
	}

	ascii, ok := l.Log("BESTPOSA")
	if !ok {
		t.Fatal("no BESTPOSA layout")
	}
	if got, want := ascii.Format, "ascii"; got != want {
		t.Errorf("default format:\n  got: %v\n want: %v", got, want)
	}
	bases := map[string]int{}
	for _, f := range ascii.Fields {
		bases[f.Name] = *f.Base
	}
	for name, want := range map[string]int{"lat": 10, "reserved": 16, "extended_solution_status": 16, "signal_mask": 16} {
		if got := bases[name]; got != want {
			t.Errorf("base of %s:\n  got: %v\n want: %v", name, got, want)
		}
	}

	binary, ok := l.Log("BESTPOSB")
	if !ok {
		t.Fatal("no BESTPOSB layout")
	}
	offsets := map[string]int{}
	for _, f := range binary.Fields {
		offsets[f.Name] = *f.Offset
	}
	for name, want := range map[string]int{"sol_status": 0, "lat": 8, "undulation": 32, "hgt_sigma": 48, "diff_age": 56, "num_svs": 64, "extended_solution_status": 69, "signal_mask": 71} {
		if got := offsets[name]; got != want {
			t.Errorf("offset of %s:\n  got: %v\n want: %v", name, got, want)
		}
	}

	if _, ok := l.Log("RANGEB"); ok {
		t.Error("unexpected RANGEB layout")
	}
}

func TestParseLayoutErrors(t *testing.T) {
	testData := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", ``, "at least one log"},
		{"not yaml", `logs: [`, "yaml"},
		{"no name", `logs: [{fields: [{name: a, type: int16}]}]`, "logs[0].name is required"},
		{"duplicate", `logs: [{name: A, fields: [{name: a, type: int16}]}, {name: A, fields: [{name: a, type: int16}]}]`, `logs[1]: duplicate log "A"`},
		{"bad format", `logs: [{name: A, format: xml, fields: [{name: a, type: int16}]}]`, "logs[0].format"},
		{"no fields", `logs: [{name: A}]`, "logs[0].fields"},
		{"no field name", `logs: [{name: A, fields: [{type: int16}]}]`, "logs[0].fields[0].name is required"},
		{"unknown type", `logs: [{name: A, fields: [{name: a, type: int64}]}]`, `logs[0].fields[0].type: unknown type "int64"`},
		{"bad base", `logs: [{name: A, fields: [{name: a, type: int16}, {name: b, type: int16, base: 1}]}]`, "logs[0].fields[1].base"},
		{"string in binary", `logs: [{name: A, format: binary, fields: [{name: a, type: string}]}]`, "cannot appear in binary logs"},
		{"negative offset", `logs: [{name: A, format: binary, fields: [{name: a, type: int16, offset: -1}]}]`, "logs[0].fields[0].offset must be >= 0"},
	}

	for _, test := range testData {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseLayout([]byte(test.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error:\n  got: %v\n want something containing: %v", err, test.want)
			}
		})
	}
}

func TestParseLayoutDefaults(t *testing.T) {
	l, err := parseLayout([]byte(`
logs:
  - name: X
    format: binary
    fields:
      - {name: a, type: int16}
      - {name: b, type: double}
      - {name: c, type: uint8, offset: 20, base: 0}
      - {name: d, type: rxstatus}
`))
	if err != nil {
		t.Fatal(err)
	}
	var offsets, bases []int
	for _, f := range l.Logs[0].Fields {
		offsets = append(offsets, *f.Offset)
		bases = append(bases, *f.Base)
	}
	if got, want := offsets, []int{0, 2, 20, 21}; !reflect.DeepEqual(got, want) {
		t.Errorf("offsets:\n  got: %v\n want: %v", got, want)
	}
	if got, want := bases, []int{10, 10, 0, 16}; !reflect.DeepEqual(got, want) {
		t.Errorf("bases:\n  got: %v\n want: %v", got, want)
	}
}
