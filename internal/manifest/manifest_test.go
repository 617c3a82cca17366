package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "minitt.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadValidProject(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
schema: minitt.manifest/v1
files:
  - prelude.stt
  - church.stt
normalize:
  - two
timing: true
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"prelude.stt", "church.stt"}
	if diff := cmp.Diff(want, p.Files); diff != "" {
		t.Fatalf("Files mismatch (-want +got):\n%s", diff)
	}
	if !p.Timing {
		t.Fatalf("want Timing true")
	}
	if !p.ShouldNormalize("two") {
		t.Fatalf("want ShouldNormalize(two) true")
	}
	if p.ShouldNormalize("three") {
		t.Fatalf("want ShouldNormalize(three) false")
	}
}

func TestResolvedFilesJoinsManifestDir(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: minitt.manifest/v1\nfiles: [a.stt]\n")
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{filepath.Join(dir, "a.stt")}
	if diff := cmp.Diff(want, p.ResolvedFiles()); diff != "" {
		t.Fatalf("ResolvedFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsWrongSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: minitt.manifest/v2\nfiles: [a.stt]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("want error for wrong schema version")
	}
}

func TestLoadRejectsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: minitt.manifest/v1\nfiles: []\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("want error for empty files list")
	}
}

func TestLoadRejectsDuplicateFile(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: minitt.manifest/v1\nfiles: [a.stt, a.stt]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("want error for duplicate file entry")
	}
}

func TestLoadRejectsNonSttExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "schema: minitt.manifest/v1\nfiles: [a.txt]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("want error for non-.stt file entry")
	}
}
