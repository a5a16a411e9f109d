package osdialog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedFilter is returned by ParseFilters for a group without a
// "name:patterns" shape.
var ErrMalformedFilter = errors.New("malformed filter group")

// allFiles is always the last group offered to the user.
const allFiles = "All Files (*.*):*"

// allFilesFilter is allFiles in parsed form.
func allFilesFilter() Filter {
	return Filter{Name: "All Files (*.*)", Patterns: []string{"*"}}
}

// FilterType is one entry of a file dialog's type selector, e.g.
// FilterType{Display: "Images", Extension: "png"}.
type FilterType struct {
	Display   string `json:"display" validate:"required"`
	Extension string `json:"extension" validate:"required,excludesall=.:;0x2C"`
}

// Filter is a parsed filter group. Patterns are bare extensions ("png") or
// "*" for any file.
type Filter struct {
	Name     string
	Patterns []string
}

// Filters is an ordered list of filter groups.
type Filters []Filter

// BuildFilterString renders filters in the readable intermediate form:
// "<display> (*.<ext>):<ext>;" per entry followed by "All Files (*.*):*".
func BuildFilterString(filters []FilterType) string {
	var sb strings.Builder
	for _, f := range filters {
		fmt.Fprintf(&sb, "%s (*.%s):%s;", f.Display, f.Extension, f.Extension)
	}
	sb.WriteString(allFiles)
	return sb.String()
}

// ParseFilters parses the readable filter form "name:pat,pat;name:pat".
// Empty groups are skipped. The name ends at the last ':' of a group so
// labels may contain colons.
func ParseFilters(s string) (Filters, error) {
	var filters Filters
	for _, group := range strings.Split(s, ";") {
		if strings.TrimSpace(group) == "" {
			continue
		}

		i := strings.LastIndexByte(group, ':')
		if i < 0 {
			return nil, fmt.Errorf("%w: %q has no ':'", ErrMalformedFilter, group)
		}

		var patterns []string
		for _, p := range strings.Split(group[i+1:], ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		if len(patterns) == 0 {
			return nil, fmt.Errorf("%w: %q has no patterns", ErrMalformedFilter, group)
		}

		filters = append(filters, Filter{Name: group[:i], Patterns: patterns})
	}
	return filters, nil
}

// String renders f back into the readable form.
func (f Filters) String() string {
	groups := make([]string, len(f))
	for i, g := range f {
		groups[i] = g.Name + ":" + strings.Join(g.Patterns, ",")
	}
	return strings.Join(groups, ";")
}

// Globs returns the patterns of g as "*.ext" globs, the form native
// dialogs expect. "*" becomes "*.*".
func (g Filter) Globs() []string {
	globs := make([]string, len(g.Patterns))
	for i, p := range g.Patterns {
		globs[i] = "*." + p
	}
	return globs
}
