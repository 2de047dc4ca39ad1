package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

type row struct {
	Prefix     string `json:"prefix"`
	ShortToken string `json:"short_token"`
	Hash       string `json:"hash" table:"wide"`
	Secret     string `json:"secret" table:"-"`
	hidden     string
}

func render(t *testing.T, f *TableFormatter, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return buf.String()
}

func TestTableFormatter_Table(t *testing.T) {
	table := &Table{}
	table.SetHeaders("NAME", "VALUE")
	table.AddRow("a", "1")
	table.AddRow("longer", "2")

	got := render(t, &TableFormatter{}, table)
	want := "NAME    VALUE\na       1\nlonger  2\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	got = render(t, &TableFormatter{NoHeaders: true}, *table)
	if strings.Contains(got, "NAME") {
		t.Errorf("NoHeaders output has headers: %q", got)
	}
}

type tablerValue struct{}

func (tablerValue) Table(wide bool) *Table {
	t := &Table{Headers: []string{"MODE"}}
	if wide {
		t.AddRow("wide")
	} else {
		t.AddRow("narrow")
	}
	return t
}

func TestTableFormatter_Tabler(t *testing.T) {
	if got := render(t, &TableFormatter{}, tablerValue{}); !strings.Contains(got, "narrow") {
		t.Errorf("Format() = %q", got)
	}
	if got := render(t, &TableFormatter{Wide: true}, tablerValue{}); !strings.Contains(got, "wide") {
		t.Errorf("wide Format() = %q", got)
	}
}

func TestTableFormatter_Nil(t *testing.T) {
	if got := render(t, &TableFormatter{}, nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestTableFormatter_Slice(t *testing.T) {
	rows := []row{
		{Prefix: "acme", ShortToken: "abc", Hash: "h1", Secret: "s1", hidden: "x"},
		{Prefix: "acme", ShortToken: "def", Hash: "h2", Secret: "s2"},
	}

	got := render(t, &TableFormatter{}, rows)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), got)
	}
	if strings.Fields(lines[0])[1] != "SHORT_TOKEN" {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(got, "HASH") || strings.Contains(got, "s1") {
		t.Errorf("narrow output shows hidden columns: %q", got)
	}

	wide := render(t, &TableFormatter{Wide: true}, rows)
	if !strings.Contains(wide, "HASH") || !strings.Contains(wide, "h2") {
		t.Errorf("wide output missing HASH column: %q", wide)
	}
	if strings.Contains(wide, "SECRET") {
		t.Errorf("table:\"-\" column shown: %q", wide)
	}
}

func TestTableFormatter_PointerSlice(t *testing.T) {
	rows := []*row{{Prefix: "p", ShortToken: "s"}, nil}

	got := render(t, &TableFormatter{}, rows)
	if lines := strings.Split(strings.TrimSpace(got), "\n"); len(lines) != 2 {
		t.Errorf("nil element should be skipped: %q", got)
	}
}

func TestTableFormatter_EmptySlice(t *testing.T) {
	if got := render(t, &TableFormatter{}, []row{}); got != "" {
		t.Errorf("Format() = %q, want empty", got)
	}
}

func TestTableFormatter_ScalarSlice(t *testing.T) {
	got := render(t, &TableFormatter{}, []string{"sha256", "sha512"})
	if got != "VALUE\nsha256\nsha512\n" {
		t.Errorf("Format() = %q", got)
	}
}

func TestTableFormatter_MapSorted(t *testing.T) {
	got := render(t, &TableFormatter{}, map[string]int{"b": 2, "a": 1, "c": 3})
	want := "KEY  VALUE\na    1\nb    2\nc    3\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestTableFormatter_Struct(t *testing.T) {
	got := render(t, &TableFormatter{}, &row{Prefix: "acme"})
	want := "FIELD        VALUE\nprefix       acme\nshort_token  -\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestTableFormatter_FallbackToJSON(t *testing.T) {
	got := render(t, &TableFormatter{}, 42)
	if strings.TrimSpace(got) != "42" {
		t.Errorf("Format(42) = %q", got)
	}
}

type stringer struct{}

func (stringer) String() string { return "custom" }

func TestFormatValue(t *testing.T) {
	str := "x"
	var nilPtr *string
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"empty string", "", "-"},
		{"int", 42, "42"},
		{"uint", uint8(7), "7"},
		{"float", 1.5, "1.50"},
		{"bool", true, "true"},
		{"slice", []int{1, 2}, "1, 2"},
		{"empty slice", []int{}, "-"},
		{"map", map[string]int{"a": 1}, "{1 keys}"},
		{"pointer", &str, "x"},
		{"nil pointer", nilPtr, "-"},
		{"stringer", stringer{}, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(reflectValue(tt.in)); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func reflectValue(v any) reflect.Value {
	return reflect.ValueOf(v)
}
