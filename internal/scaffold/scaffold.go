package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/skillset-labs/skillset/internal/manifest"
)

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name        string   // package identity, e.g. "review-prs"
	Title       string   // derived heading, e.g. "Review prs"
	Description string   // trigger text agents match against
	Version     string   // semver, e.g. "0.1.0"
	License     string
	Workers     []string // group tags the package belongs to
	Year        int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// NewData creates a Data with derived fields populated.
func NewData(name, description string, workers []string) *Data {
	d := &Data{
		Name:        name,
		Description: description,
		Version:     "0.1.0",
		License:     "MIT",
		Workers:     workers,
		Year:        time.Now().Year(),
	}

	if d.Description == "" {
		d.Description = fmt.Sprintf("Skill package: %s", name)
	}

	title := strings.ReplaceAll(name, "-", " ")
	if title != "" {
		d.Title = strings.ToUpper(title[:1]) + title[1:]
	}

	return d
}

// Generate creates a new skill package skeleton at parentDir/<name>.
func Generate(data *Data, parentDir string) (*Result, error) {
	if !namePattern.MatchString(data.Name) {
		return nil, fmt.Errorf("invalid package name %q: use lowercase letters, digits, and hyphens", data.Name)
	}

	outputDir := filepath.Join(parentDir, data.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Refuse to scribble over existing content.
	existing, err := os.ReadDir(outputDir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	root := "templates/skill"
	err = fs.WalkDir(templateFS, root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if rel == "." {
				return nil
			}
			return os.MkdirAll(filepath.Join(outputDir, rel), 0755)
		}

		tmplBytes, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		outRel := strings.TrimSuffix(rel, ".tmpl")
		outPath := filepath.Join(outputDir, outRel)

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Validate the generated manifest against the schema.
	manifestFile := filepath.Join(outputDir, manifest.FileName)
	valResult, valErr := manifest.ValidateFile(manifestFile)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return result, nil
}
