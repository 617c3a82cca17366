// Package manifest loads minitt.yaml project files: an ordered list of
// .stt source files plus per-run flags for `minitt check`/`minitt run`,
// grounded on the teacher's internal/eval_harness/spec.go YAML loader.
// This is a project-level convenience, not a module system (spec.md
// §1 Non-goals): no namespacing, no re-export, no visibility rules —
// every file's declarations land in the same flat top-level context,
// in the listed order.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SchemaVersion identifies the manifest format understood by this
// loader. Unknown versions are rejected rather than guessed at.
const SchemaVersion = "minitt.manifest/v1"

// Project is a minitt.yaml project file: an ordered list of source
// files to elaborate together, plus run-wide defaults.
type Project struct {
	Schema string `yaml:"schema"`

	// Files is the ordered list of .stt files to elaborate, relative
	// to the manifest's own directory. Order matters: a later file
	// may reference an earlier file's declarations, never the reverse.
	Files []string `yaml:"files"`

	// Normalize lists declaration names to print in normal form after
	// elaboration, equivalent to tagging them `[normalize]` inline,
	// for declarations defined in files you don't want to edit.
	Normalize []string `yaml:"normalize,omitempty"`

	// Timing requests `[elaborate]`-style wall-clock reporting for
	// every declaration in the project, not just tagged ones.
	Timing bool `yaml:"timing,omitempty"`

	// dir is the directory the manifest was loaded from, used to
	// resolve Files as relative paths.
	dir string
}

// Load reads and validates a minitt.yaml project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	p.dir = filepath.Dir(path)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks the project file is well-formed.
func (p *Project) Validate() error {
	if p.Schema != SchemaVersion {
		return fmt.Errorf("unsupported schema %q (want %q)", p.Schema, SchemaVersion)
	}
	if len(p.Files) == 0 {
		return fmt.Errorf("no files listed")
	}
	seen := make(map[string]bool, len(p.Files))
	for _, f := range p.Files {
		if seen[f] {
			return fmt.Errorf("duplicate file entry: %s", f)
		}
		seen[f] = true
		if filepath.Ext(f) != ".stt" {
			return fmt.Errorf("file %s: must have .stt extension", f)
		}
	}
	return nil
}

// ResolvedFiles returns Files as absolute (or manifest-relative)
// paths ready to read, in declaration order.
func (p *Project) ResolvedFiles() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		if filepath.IsAbs(f) {
			out[i] = f
		} else {
			out[i] = filepath.Join(p.dir, f)
		}
	}
	return out
}

// ShouldNormalize reports whether declName was requested for
// normal-form printing by the project file (independent of any
// inline `[normalize]` tag on the declaration itself).
func (p *Project) ShouldNormalize(declName string) bool {
	for _, n := range p.Normalize {
		if n == declName {
			return true
		}
	}
	return false
}
