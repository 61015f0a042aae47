package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/datatune/datatune"
	"github.com/datatune/datatune/compose"
	"github.com/datatune/datatune/csvdata"
	"gopkg.in/yaml.v3"
)

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "files.txt")
	abs := filepath.Join(dir, "abs.csv")
	contents := "# data files\na.csv\n\n  sub/b.csv  \n" + abs + "\n"
	if err := os.WriteFile(list, []byte(contents), 0644); err != nil {
		t.Fatalf("could not write list: %v", err)
	}
	got, err := expandArgs([]string{"first.csv", "@" + list, "last.csv"})
	if err != nil {
		t.Fatalf("expandArgs failed: %v", err)
	}
	expected := []string{"first.csv", filepath.Join(dir, "a.csv"), filepath.Join(dir, "sub", "b.csv"), abs, "last.csv"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("wrong files. got: %v expected: %v", got, expected)
	}
	if _, err := expandArgs([]string{"@" + filepath.Join(dir, "missing.txt")}); err == nil {
		t.Fatal("a missing list should be an error")
	}
}

func TestDumpTune(t *testing.T) {
	data, err := csvdata.ReadFile("../../testdata/sample_gen_Y.csv")
	if err != nil {
		t.Fatalf("could not read data: %v", err)
	}
	c, err := compose.Compose(data, datatune.Params{Style: datatune.Gentle, Name: "dump"})
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	doc := dumpTune(c)
	if len(doc.Melody) != 1 || len(doc.Support) != 1 || len(doc.Sections) != 3 {
		t.Fatalf("wrong dump shape: %d melody, %d support, %d sections", len(doc.Melody), len(doc.Support), len(doc.Sections))
	}
	if expected := []int{-1, -1, 57, 62}; !reflect.DeepEqual(doc.Melody[0].Bars[3], expected) {
		t.Fatalf("wrong bar. got: %v expected: %v", doc.Melody[0].Bars[3], expected)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("could not marshal: %v", err)
	}
	text := string(out)
	for _, s := range []string{"name: dump\n", "kind: chorus\n", "cadence: yearly\n", "channel: 9\n", "style: gentle\n"} {
		if !strings.Contains(text, s) {
			t.Fatalf("missing %q in:\n%v", s, text)
		}
	}
}
