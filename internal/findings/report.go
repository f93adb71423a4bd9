package findings

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
)

// Report accumulates findings across the pipeline for the end-of-run summary.
type Report struct {
	items []*Finding
}

// Add records a finding. Nil findings are ignored.
func (r *Report) Add(f *Finding) {
	if f != nil {
		r.items = append(r.items, f)
	}
}

// AddError records err if it carries a Finding; other errors are wrapped
// under the given fallback kind so nothing silently drops out of the summary.
func (r *Report) AddError(err error, fallback Kind) {
	if err == nil {
		return
	}
	var f *Finding
	if errors.As(err, &f) {
		r.Add(f)
		return
	}
	r.Add(&Finding{Kind: fallback, Detail: err.Error()})
}

// Items returns all recorded findings in insertion order.
func (r *Report) Items() []*Finding {
	return r.items
}

// Empty reports whether no findings were recorded.
func (r *Report) Empty() bool {
	return len(r.items) == 0
}

// HasErrors reports whether any non-diagnostic finding was recorded.
func (r *Report) HasErrors() bool {
	for _, f := range r.items {
		if !f.Diagnostic() {
			return true
		}
	}
	return false
}

// Count returns the number of findings of the given kind.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, f := range r.items {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Print writes the summary grouped by kind, packages sorted within each group.
func (r *Report) Print(w io.Writer) {
	if r.Empty() {
		return
	}

	byKind := make(map[Kind][]*Finding)
	var kinds []Kind
	for _, f := range r.items {
		if _, seen := byKind[f.Kind]; !seen {
			kinds = append(kinds, f.Kind)
		}
		byKind[f.Kind] = append(byKind[f.Kind], f)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	errLabel := color.New(color.FgRed).SprintFunc()
	warnLabel := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintln(w, "Findings:")
	for _, kind := range kinds {
		group := byKind[kind]
		label := errLabel(string(kind))
		if group[0].Diagnostic() {
			label = warnLabel(string(kind))
		}
		fmt.Fprintf(w, "  %s (%d)\n", label, len(group))

		sorted := make([]*Finding, len(group))
		copy(sorted, group)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Package < sorted[j].Package })
		for _, f := range sorted {
			if f.Package != "" {
				fmt.Fprintf(w, "    %s: %s\n", f.Package, f.Detail)
			} else {
				fmt.Fprintf(w, "    %s\n", f.Detail)
			}
		}
	}
}
