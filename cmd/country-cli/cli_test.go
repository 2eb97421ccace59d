package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

const (
	infoFixture   = "../../internal/loader/testdata/countryInfo.txt"
	shapesFixture = "../../internal/loader/testdata/shapes.json"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--info", infoFixture, "--shapes", shapesFixture}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestLookupCommand(t *testing.T) {
	out, err := run(t, "--json", "lookup", "--", "17.711150", "104.411472", "17.722720", "104.427701", "-91", "27.8725", "0", "-160")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var rows []lookupRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := []string{"TH", "LA", "out_of_range", "no_match"}
	for i, w := range want {
		got := rows[i].ISO
		if got == "" {
			got = rows[i].Error
		}
		if got != w {
			t.Errorf("row %d = %+v, want %s", i, rows[i], w)
		}
	}
}

func TestLookupCommandArgs(t *testing.T) {
	if _, err := run(t, "lookup", "1"); err == nil {
		t.Error("odd argument count should fail")
	}
	if _, err := run(t, "lookup", "north", "1"); err == nil {
		t.Error("bad latitude should fail")
	}
}

func TestListAndShow(t *testing.T) {
	out, err := run(t, "list", "--continent", "af")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "ZA\tZAF") || !strings.Contains(out, "2 countries") {
		t.Errorf("list output:\n%s", out)
	}
	out, err = run(t, "show", "gb")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "en-GB,cy-GB,gd") || !strings.Contains(out, "62348447") {
		t.Errorf("show output:\n%s", out)
	}
	if _, err := run(t, "show", "QQ"); err == nil {
		t.Error("unknown ISO should fail")
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "countries:      6") || !strings.Contains(out, "antimeridian:   FJ") {
		t.Errorf("validate output:\n%s", out)
	}
}
