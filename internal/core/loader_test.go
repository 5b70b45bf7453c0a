package core

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cleaned_irs_charities.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := LoadCSV(context.Background(), path)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("LoadCSV() error = %v, want ErrSourceNotFound", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the path: %v", err)
	}
	if !strings.Contains(err.Error(), "cleaning step") {
		t.Errorf("error should say how to fix it: %v", err)
	}
}

func TestLoadCSV_Directory(t *testing.T) {
	_, err := LoadCSV(context.Background(), t.TempDir())
	if err == nil || errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("LoadCSV(dir) error = %v, want a not-a-file error", err)
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "")

	_, err := LoadCSV(context.Background(), path)
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("LoadCSV() error = %v, want ErrEmptyFile", err)
	}
}

func TestLoadCSV_ReadsAllAsText(t *testing.T) {
	content := "\xEF\xBB\xBFein,name,city,state,ntee_code,ntee_major\n" +
		"00123,\"Foo, Inc\",Austin,tx,a20,a\n" +
		"0456,,,ny,,\n" +
		",,,,,\n"
	path := writeCSV(t, t.TempDir(), content)

	ds, err := LoadCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	if diff := cmp.Diff(charityHeader, ds.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	want := [][]string{
		{"00123", "Foo, Inc", "Austin", "tx", "a20", "a"},
		{"0456", "", "", "ny", "", ""},
		{"", "", "", "", "", ""},
	}
	if diff := cmp.Diff(want, ds.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if ds.Path != path {
		t.Errorf("Path = %q, want %q", ds.Path, path)
	}
}

func TestLoadCSV_RaggedRows(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "ein,name\n1\n2,Two,extra\n")

	ds, err := LoadCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
}

func TestLoadCSV_StrayQuotes(t *testing.T) {
	content := "ein,name,city,state,ntee_code,ntee_major\n" +
		"1,The \"Best\" Co,X,tx,a,b\n" +
		"2,Plain,Y,ny,c,d\n"
	path := writeCSV(t, t.TempDir(), content)

	ds, err := LoadCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	want := [][]string{
		{"1", "The \"Best\" Co", "X", "tx", "a", "b"},
		{"2", "Plain", "Y", "ny", "c", "d"},
	}
	if diff := cmp.Diff(want, ds.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDataset_ReadError(t *testing.T) {
	r := io.MultiReader(
		strings.NewReader("ein,name\n1,One\n"),
		iotest.ErrReader(errors.New("input/output error")),
	)

	_, err := readDataset(r)
	if err == nil {
		t.Fatal("readDataset() expected error")
	}
	if got := MapError(err).Code; got != "FILE003" {
		t.Errorf("MapError code = %q, want FILE003 for %v", got, err)
	}
}
