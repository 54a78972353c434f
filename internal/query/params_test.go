// AngelaMos | 2026
// params_test.go

package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams_Defaults(t *testing.T) {
	p := ParseParams(url.Values{})

	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, Asc, p.SortDirection)
	assert.Empty(t, p.Search)
	assert.Empty(t, p.Include)
	assert.False(t, p.NoInclude)
	assert.Empty(t, p.Filters)
}

func TestParseParams_ReadsEveryKey(t *testing.T) {
	values, err := url.ParseQuery(
		"search=+phone+&sort_by=price&sort_direction=DESC&per_page=25&page=3" +
			"&include=user,+permissions,,&no_include=true" +
			"&filters[city]=Davao&filters[is_default]=1&filters[a][b]=x&filters[]=y",
	)
	assert.NoError(t, err)

	p := ParseParams(values)

	assert.Equal(t, "phone", p.Search)
	assert.Equal(t, "price", p.SortBy)
	assert.Equal(t, Desc, p.SortDirection)
	assert.Equal(t, 25, p.PerPage)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, []string{"user", "permissions"}, p.Include)
	assert.True(t, p.NoInclude)
	assert.Equal(t, map[string]string{"city": "Davao", "is_default": "1"}, p.Filters)
	assert.Equal(t, values, p.Values)
}

func TestClampPerPage(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -50, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 10, want: 10},
		{in: 99, want: 99},
		{in: 100, want: 100},
		{in: 101, want: 100},
		{in: 1_000_000, want: 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPerPage(tt.in), "per_page=%d", tt.in)
	}
}

func TestParseParams_MalformedNumbersFallBack(t *testing.T) {
	values := url.Values{
		"per_page": {"lots"},
		"page":     {"-4"},
	}

	p := ParseParams(values)

	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 1, p.Page)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseDirection("desc"))
	assert.Equal(t, Desc, ParseDirection(" Desc "))
	assert.Equal(t, Asc, ParseDirection("asc"))
	assert.Equal(t, Asc, ParseDirection("sideways"))
	assert.Equal(t, Asc, ParseDirection(""))
}

func TestBoolValue(t *testing.T) {
	for _, raw := range []string{"1", "true", "TRUE", "on", "yes"} {
		assert.True(t, BoolValue(raw), raw)
	}
	for _, raw := range []string{"", "0", "false", "nope"} {
		assert.False(t, BoolValue(raw), raw)
	}
}
