package resx_test

import (
	"bytes"
	"testing"

	"locparse/internal/locfile"
	"locparse/internal/resx"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="utf-8"?>
<root>
  <xsd:schema id="root" xmlns="" xmlns:xsd="http://www.w3.org/2001/XMLSchema" />
  <resheader name="resmimetype">
    <value>text/microsoft-resx</value>
  </resheader>
  <data name="Greeting" xml:space="preserve">
    <value>Hello</value>
    <comment>Shown on the start page</comment>
  </data>
  <data name="Farewell" xml:space="preserve">
    <value>Bye&#xD;&#xA;now</value>
  </data>
</root>`

func TestRead(t *testing.T) {
	t.Run("Should read data elements in document order", func(t *testing.T) {
		f, err := resx.Read(sample, resx.ReadOptions{FilePath: "strings.resx", Logger: zerolog.Nop()})
		require.NoError(t, err)
		assert.Equal(t, []string{"Greeting", "Farewell"}, f.Names)
		assert.Equal(t, locfile.String{Value: "Hello", Comment: "Shown on the start page"}, f.Strings["Greeting"])
		assert.Equal(t, "Bye\r\nnow", f.Strings["Farewell"].Value)
	})

	t.Run("Should normalize newlines when requested", func(t *testing.T) {
		f, err := resx.Read(sample, resx.ReadOptions{
			FilePath:             "strings.resx",
			NewlineNormalization: locfile.NewlineLf,
			Logger:               zerolog.Nop(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Bye\nnow", f.Strings["Farewell"].Value)
	})

	t.Run("Should warn about missing comments only when asked", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := resx.Read(sample, resx.ReadOptions{
			FilePath:             "strings.resx",
			WarnOnMissingComment: true,
			Logger:               zerolog.New(&buf),
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), `"string":"Farewell"`)
		assert.NotContains(t, buf.String(), `"string":"Greeting"`)

		buf.Reset()
		_, err = resx.Read(sample, resx.ReadOptions{FilePath: "strings.resx", Logger: zerolog.New(&buf)})
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("Should skip ignored strings", func(t *testing.T) {
		filter := locfile.NewStringFilter(func(_, name string) bool { return name == "Greeting" })
		f, err := resx.Read(sample, resx.ReadOptions{FilePath: "strings.resx", IgnoreString: filter, Logger: zerolog.Nop()})
		require.NoError(t, err)
		assert.Equal(t, []string{"Farewell"}, f.Names)
	})

	t.Run("Should keep the first of duplicate names and skip broken elements", func(t *testing.T) {
		var buf bytes.Buffer
		content := `<root>
  <data name="A"><value>one</value></data>
  <data name="A"><value>two</value></data>
  <data name="B"></data>
  <data><value>anonymous</value></data>
</root>`
		f, err := resx.Read(content, resx.ReadOptions{FilePath: "dup.resx", Logger: zerolog.New(&buf)})
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, f.Names)
		assert.Equal(t, "one", f.Strings["A"].Value)
		assert.Contains(t, buf.String(), "Duplicate RESX string")
		assert.Contains(t, buf.String(), "missing a <value> element")
		assert.Contains(t, buf.String(), "missing a name")
	})

	t.Run("Should accept an empty root", func(t *testing.T) {
		f, err := resx.Read("<root/>", resx.ReadOptions{FilePath: "a.resx", Logger: zerolog.Nop()})
		require.NoError(t, err)
		assert.Equal(t, 0, f.Len())
	})

	t.Run("Should fail on malformed XML", func(t *testing.T) {
		_, err := resx.Read("<root><data>", resx.ReadOptions{FilePath: "bad.resx", Logger: zerolog.Nop()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.resx")
	})

	t.Run("Should fail when the document element is not root", func(t *testing.T) {
		_, err := resx.Read("<resources/>", resx.ReadOptions{FilePath: "other.resx", Logger: zerolog.Nop()})
		assert.Error(t, err)
	})
}
