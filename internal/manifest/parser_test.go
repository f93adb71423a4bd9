package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSkill = `---
name: builds
description: Manage build uploads and processing state
license: apache-2.0
version: "1.2.0"
workers:
  - builds
  - ci
  - builds
---

# Build management

Start with [the upload checklist](references/upload-checklist.md) and the
shared [API conventions](../shared/api-conventions.md).

![flow](assets/build-flow.png)

External links like [the docs](https://example.com/docs) and
[anchors](#build-management) are not resource references.
`

func writeTempSkill(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp skill: %v", err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	parsed, err := ParseFile(writeTempSkill(t, sampleSkill))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := parsed.Manifest
	if m.Name != "builds" {
		t.Errorf("expected name 'builds', got %q", m.Name)
	}
	if m.Description == "" {
		t.Error("expected non-empty description")
	}
	if m.License != "apache-2.0" {
		t.Errorf("expected license 'apache-2.0', got %q", m.License)
	}
	if m.Version != "1.2.0" {
		t.Errorf("expected version '1.2.0', got %q", m.Version)
	}

	// Duplicate tags collapse, first-seen order preserved.
	want := []string{"builds", "ci"}
	if len(m.Workers) != len(want) {
		t.Fatalf("expected workers %v, got %v", want, m.Workers)
	}
	for i, w := range want {
		if m.Workers[i] != w {
			t.Errorf("expected workers[%d]=%q, got %q", i, w, m.Workers[i])
		}
	}
}

func TestParseExtractsRelativeRefs(t *testing.T) {
	parsed, err := Parse([]byte(sampleSkill))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRefs := []string{
		"references/upload-checklist.md",
		"../shared/api-conventions.md",
		"assets/build-flow.png",
	}
	if len(parsed.Refs) != len(wantRefs) {
		t.Fatalf("expected refs %v, got %v", wantRefs, parsed.Refs)
	}
	for i, want := range wantRefs {
		if parsed.Refs[i] != want {
			t.Errorf("expected refs[%d]=%q, got %q", i, want, parsed.Refs[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no front matter",
			content: "# Just a heading\n\nBody text.\n",
			wantErr: "missing front matter",
		},
		{
			name:    "missing name",
			content: "---\ndescription: something\n---\nbody\n",
			wantErr: "missing required 'name'",
		},
		{
			name:    "missing description",
			content: "---\nname: apps\n---\nbody\n",
			wantErr: "missing required 'description'",
		},
		{
			name:    "workers not a list",
			content: "---\nname: apps\ndescription: d\nworkers: apps\n---\nbody\n",
			wantErr: "not a list",
		},
		{
			name:    "always not a bool",
			content: "---\nname: apps\ndescription: d\nalways: sure\n---\nbody\n",
			wantErr: "not a boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestRelativeRef(t *testing.T) {
	tests := []struct {
		dest string
		want string
		ok   bool
	}{
		{"assets/a.png", "assets/a.png", true},
		{"../shared/x.md", "../shared/x.md", true},
		{"references/api.md#section", "references/api.md", true},
		{"https://example.com/a", "", false},
		{"mailto:team@example.com", "", false},
		{"#anchor", "", false},
		{"/absolute/path.md", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			got, ok := relativeRef(tt.dest)
			if ok != tt.ok || got != tt.want {
				t.Errorf("relativeRef(%q) = (%q, %v), want (%q, %v)", tt.dest, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHasWorker(t *testing.T) {
	m := &Manifest{Workers: []string{"apps", "builds"}}
	if !m.HasWorker("apps") {
		t.Error("expected HasWorker to find 'apps'")
	}
	if m.HasWorker("reviews") {
		t.Error("expected HasWorker not to find 'reviews'")
	}
}
