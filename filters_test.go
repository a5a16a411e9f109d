package osdialog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterString(t *testing.T) {
	assert.Equal(t, "All Files (*.*):*", BuildFilterString(nil))
	assert.Equal(t,
		"Images (*.png):png;Text (*.txt):txt;All Files (*.*):*",
		BuildFilterString([]FilterType{{"Images", "png"}, {"Text", "txt"}}),
	)
}

func TestBuildFilterStringShape(t *testing.T) {
	for n := 0; n <= 8; n++ {
		var types []FilterType
		for i := 0; i < n; i++ {
			types = append(types, FilterType{Display: fmt.Sprintf("Type %d", i), Extension: fmt.Sprintf("e%d", i)})
		}

		s := BuildFilterString(types)
		require.True(t, strings.HasSuffix(s, "All Files (*.*):*"))

		rest := strings.TrimSuffix(s, "All Files (*.*):*")
		for _, ft := range types {
			seg := fmt.Sprintf("%s (*.%s):%s;", ft.Display, ft.Extension, ft.Extension)
			require.True(t, strings.HasPrefix(rest, seg), "segment %q out of order in %q", seg, s)
			rest = strings.TrimPrefix(rest, seg)
		}
		assert.Empty(t, rest)
	}
}

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Filters
		wantErr bool
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "Text:txt", want: Filters{{Name: "Text", Patterns: []string{"txt"}}}},
		{
			name: "several groups and patterns",
			in:   "Source:c,cpp,m;Header:h,hpp",
			want: Filters{
				{Name: "Source", Patterns: []string{"c", "cpp", "m"}},
				{Name: "Header", Patterns: []string{"h", "hpp"}},
			},
		},
		{
			name: "built string",
			in:   "Images (*.png):png;All Files (*.*):*",
			want: Filters{
				{Name: "Images (*.png)", Patterns: []string{"png"}},
				{Name: "All Files (*.*)", Patterns: []string{"*"}},
			},
		},
		{name: "trailing separator", in: "Text:txt;", want: Filters{{Name: "Text", Patterns: []string{"txt"}}}},
		{name: "colon in label", in: "C++: sources:cpp", want: Filters{{Name: "C++: sources", Patterns: []string{"cpp"}}}},
		{name: "blank patterns dropped", in: "Text:txt, ,md", want: Filters{{Name: "Text", Patterns: []string{"txt", "md"}}}},
		{name: "missing colon", in: "Text", wantErr: true},
		{name: "no patterns", in: "Text:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilters(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFiltersString(t *testing.T) {
	in := "Source:c,cpp;Header:h"
	f, err := ParseFilters(in)
	require.NoError(t, err)
	assert.Equal(t, in, f.String())
}

func TestFilterGlobs(t *testing.T) {
	f := Filter{Name: "Any", Patterns: []string{"png", "*"}}
	assert.Equal(t, []string{"*.png", "*.*"}, f.Globs())
}
