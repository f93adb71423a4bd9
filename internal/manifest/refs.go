package manifest

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// extractRefs walks the Markdown AST and collects relative link and image
// destinations. External URLs, anchors, and absolute paths are not resource
// references and are skipped.
func extractRefs(doc ast.Node, source []byte) []string {
	var refs []string
	seen := make(map[string]bool)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var dest string
		switch node := n.(type) {
		case *ast.Link:
			dest = string(node.Destination)
		case *ast.Image:
			dest = string(node.Destination)
		default:
			return ast.WalkContinue, nil
		}

		ref, ok := relativeRef(dest)
		if ok && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
		return ast.WalkContinue, nil
	})

	return refs
}

// relativeRef normalizes a link destination to a relative resource path.
// Returns false for anything that is not a local relative reference.
func relativeRef(dest string) (string, bool) {
	if dest == "" {
		return "", false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}
	if strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return "", false
	}

	// Strip fragment and query parts; the file is what must exist.
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return "", false
	}
	return dest, true
}
