package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordrec/internal/record"
)

func TestDecodeKeepsDocumentOrder(t *testing.T) {
	r, err := Decode([]byte(`
zeta: 1
alpha: two
mid:
  inner_b: true
  inner_a: ~
list: [1, 2.5, "x", {k: v}]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid", "list"}, r.KeyList())

	mid, ok := r.Get("mid").(*record.Record)
	require.True(t, ok)
	assert.Equal(t, []string{"inner_b", "inner_a"}, mid.KeyList())
	assert.Equal(t, "Mid", mid.Shape())

	assert.Equal(t, map[string]any{
		"zeta":  int64(1),
		"alpha": "two",
		"mid":   map[string]any{"inner_b": true, "inner_a": nil},
		"list":  []any{int64(1), 2.5, "x", map[string]any{"k": "v"}},
	}, r.ToPlain())
}

func TestDecodeJSON(t *testing.T) {
	r, err := Decode([]byte(`{"b": 1, "a": {"y": null, "x": [true]}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, r.KeyList())
	v, ok := r.GetPath("a.x")
	require.True(t, ok)
	assert.Equal(t, record.List{record.Bool(true)}, v)
}

func TestDecodeNonStringKeys(t *testing.T) {
	r, err := Decode([]byte("1: one\ntrue: yes\n2.5: half\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "true", "2.5"}, r.KeyList())
}

func TestDecodeAliasesAndMerge(t *testing.T) {
	r, err := Decode([]byte(`
base: &base
  host: localhost
  port: 80
svc:
  <<: *base
  port: 8080
copy: *base
`))
	require.NoError(t, err)

	svc := r.Get("svc").(*record.Record)
	assert.Equal(t, []string{"host", "port"}, svc.KeyList())
	assert.Equal(t, record.Int(8080), svc.Get("port"))

	cp := r.Get("copy").(*record.Record)
	assert.Equal(t, record.Int(80), cp.Get("port"))
	assert.NotSame(t, r.Get("base"), cp)
}

func TestDecodeEmptyDocument(t *testing.T) {
	r, err := Decode([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestDecodeRejectsNonMapping(t *testing.T) {
	_, err := Decode([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = Decode([]byte("just a string"))
	assert.ErrorIs(t, err, ErrNotMapping)
}

func TestDecodeInvalidYAML(t *testing.T) {
	_, err := Decode([]byte("a: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse document")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\nb: 2\n"), 0644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.KeyList())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
