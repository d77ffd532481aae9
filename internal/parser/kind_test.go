package parser_test

import (
	"testing"

	"locparse/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectByFilePath(t *testing.T) {
	tests := []struct {
		path string
		want parser.Kind
	}{
		{"strings.resx", parser.KindResx},
		{"src/Strings.RESX", parser.KindResx},
		{"strings.resx.json", parser.KindLocJSON},
		{"STRINGS.Resx.Json", parser.KindLocJSON},
		{"strings.loc.json", parser.KindLocJSON},
		{"a/b/c.LOC.JSON", parser.KindLocJSON},
		{"strings.resjson", parser.KindResJSON},
		{"Strings.ResJson", parser.KindResJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := parser.SelectByFilePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, path := range []string{"strings.json", "strings.resx.bak", "resx", "strings.loc", "", "strings.resjson.txt"} {
		t.Run("Should reject "+path, func(t *testing.T) {
			_, err := parser.SelectByFilePath(path)
			require.ErrorIs(t, err, parser.ErrUnsupportedExtension)
			assert.Equal(t, "unsupported file extension in file: "+path, err.Error())
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]parser.Kind{
		"resx":     parser.KindResx,
		"loc.json": parser.KindLocJSON,
		"ResJSON":  parser.KindResJSON,
	} {
		got, err := parser.ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, got, mustParseKind(t, got.String()))
	}

	_, err := parser.ParseKind("po")
	require.ErrorIs(t, err, parser.ErrUnsupportedParser)
	assert.Equal(t, "unsupported parser: po", err.Error())
}

func mustParseKind(t *testing.T, s string) parser.Kind {
	t.Helper()
	k, err := parser.ParseKind(s)
	require.NoError(t, err)
	return k
}
