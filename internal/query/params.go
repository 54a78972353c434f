// AngelaMos | 2026
// params.go

package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	filtersPrefix  = "filters["
)

// Params is the list-endpoint input after parsing. Nothing in it has been
// checked against a whitelist yet.
type Params struct {
	Search        string
	SortBy        string
	SortDirection Direction
	PerPage       int
	Page          int
	Include       []string
	NoInclude     bool
	Filters       map[string]string

	// Values keeps the raw query string for hooks.
	Values url.Values
}

func ParseParams(values url.Values) Params {
	p := Params{
		Search:        strings.TrimSpace(values.Get("search")),
		SortBy:        strings.TrimSpace(values.Get("sort_by")),
		SortDirection: ParseDirection(values.Get("sort_direction")),
		PerPage:       ClampPerPage(intValue(values, "per_page", DefaultPerPage)),
		Page:          max(intValue(values, "page", 1), 1),
		Include:       splitList(values.Get("include")),
		NoInclude:     BoolValue(values.Get("no_include")),
		Filters:       parseFilters(values),
		Values:        values,
	}

	return p
}

// ClampPerPage bounds a page size to [1, MaxPerPage].
func ClampPerPage(n int) int {
	return max(1, min(n, MaxPerPage))
}

// BoolValue accepts the usual truthy spellings of a query flag.
func BoolValue(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func intValue(values url.Values, key string, fallback int) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return n
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// parseFilters collects filters[field]=value pairs. Nested or array forms
// such as filters[a][b] are not exact-match filters and are skipped.
func parseFilters(values url.Values) map[string]string {
	filters := make(map[string]string)

	for key, vals := range values {
		if !strings.HasPrefix(key, filtersPrefix) || !strings.HasSuffix(key, "]") {
			continue
		}

		field := key[len(filtersPrefix) : len(key)-1]
		if field == "" || strings.ContainsAny(field, "[]") || len(vals) == 0 {
			continue
		}

		filters[field] = vals[0]
	}

	return filters
}
