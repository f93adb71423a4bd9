package manifest

import (
	"testing"
)

func validMeta() map[string]interface{} {
	return map[string]interface{}{
		"name":        "app-store-reviews",
		"description": "Respond to and analyze App Store reviews",
		"license":     "mit",
		"version":     "0.3.1",
		"workers":     []interface{}{"reviews", "metadata"},
		"always":      false,
	}
}

func TestValidateValid(t *testing.T) {
	result, err := Validate(validMeta())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
		t.Fatal("expected valid front matter")
	}
}

func TestValidateIssues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]interface{})
		path   string
	}{
		{
			name:   "missing name",
			mutate: func(m map[string]interface{}) { delete(m, "name") },
			path:   "",
		},
		{
			name:   "bad name pattern",
			mutate: func(m map[string]interface{}) { m["name"] = "Not Kebab" },
			path:   "/name",
		},
		{
			name:   "empty description",
			mutate: func(m map[string]interface{}) { m["description"] = "" },
			path:   "/description",
		},
		{
			name:   "bad worker tag",
			mutate: func(m map[string]interface{}) { m["workers"] = []interface{}{"OK_not"} },
			path:   "/workers/0",
		},
		{
			name:   "bad semver",
			mutate: func(m map[string]interface{}) { m["version"] = "one.two" },
			path:   "/version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMeta()
			tt.mutate(m)

			result, err := Validate(m)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected validation issues")
			}

			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an issue at path %q, got %+v", tt.path, result.Issues)
			}
		})
	}
}

func TestValidateExtraKeysAllowed(t *testing.T) {
	m := validMeta()
	m["allowed-tools"] = []interface{}{"Bash", "Read"}

	result, err := Validate(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Errorf("extra front matter keys should be allowed, got %+v", result.Issues)
	}
}

func TestNormalizeYAMLInterfaceMaps(t *testing.T) {
	nested := map[string]interface{}{
		"metadata": map[interface{}]interface{}{
			"channel": "release",
		},
	}
	normalized := normalizeYAML(nested).(map[string]interface{})
	inner, ok := normalized["metadata"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected nested map to be normalized, got %T", normalized["metadata"])
	}
	if inner["channel"] != "release" {
		t.Errorf("expected nested value preserved, got %v", inner["channel"])
	}
}
