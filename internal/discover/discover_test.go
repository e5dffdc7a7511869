package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		full := filepath.Join(root, n)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSourcesFindsKnownExtensions(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.c", "b.cpp", "sub/c.h", "sub/d.hpp",
		"README.md", "Makefile", "sub/notes.txt",
	)

	got, err := Sources(root)
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.c"),
		filepath.Join(root, "b.cpp"),
		filepath.Join(root, "sub/c.h"),
		filepath.Join(root, "sub/d.hpp"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sources() = %v, want %v", got, want)
	}
}

func TestSourcesSkipsDotDirectories(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "keep.c", ".git/objects/x.c", ".hidden/y.h")

	got, err := Sources(root)
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	want := []string{filepath.Join(root, "keep.c")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sources() = %v, want %v", got, want)
	}
}

func TestSourcesEmptyTree(t *testing.T) {
	root := t.TempDir()
	got, err := Sources(root)
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Sources() = %v, want empty", got)
	}
}
