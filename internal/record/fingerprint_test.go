package record

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintIgnoresOrder(t *testing.T) {
	r1 := MustNew(nil, P("a", 1), P("b", map[string]any{"x": "y", "z": []any{1, 2}}))
	r2 := MustNew(nil, P("b", []Pair{P("z", []any{1, 2}), P("x", "y")}), P("a", 1))
	require.True(t, r1.Equals(r2))

	f1, err := r1.Fingerprint()
	require.NoError(t, err)
	f2, err := r2.Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, f1, f2)
	assert.Len(t, f1, 64)
}

func TestFingerprintDiffers(t *testing.T) {
	f1, err := MustNew(nil, P("a", 1)).Fingerprint()
	require.NoError(t, err)
	f2, err := MustNew(nil, P("a", 2)).Fingerprint()
	require.NoError(t, err)
	f3, err := MustNew(nil, P("a", "1")).Fingerprint()
	require.NoError(t, err)

	assert.NotEqual(t, f1, f2)
	assert.NotEqual(t, f1, f3)
}

func TestFingerprintNumbers(t *testing.T) {
	fi, err := MustNew(nil, P("n", 1)).Fingerprint()
	require.NoError(t, err)
	ff, err := MustNew(nil, P("n", 1.0)).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fi, ff)

	_, err = MustNew(nil, P("n", math.NaN())).Fingerprint()
	assert.ErrorIs(t, err, ErrNonFinite)
	_, err = MustNew(nil, P("n", math.Inf(1))).Fingerprint()
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestFingerprintNFC(t *testing.T) {
	composed, err := MustNew(nil, P("s", "caf\u00e9")).Fingerprint()
	require.NoError(t, err)
	decomposed, err := MustNew(nil, P("s", "cafe\u0301")).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestCanonicalForm(t *testing.T) {
	r := MustNew(nil, P("b", "<&>"), P("a", List{Null{}, Bool(true), Float(0.5)}))

	var buf bytes.Buffer
	require.NoError(t, writeCanonical(&buf, r))
	assert.Equal(t, `{"a":[null,true,0.5],"b":"<&>"}`, buf.String())
}

func TestFingerprintAgreesWithEqualOnLargeNumbers(t *testing.T) {
	big := MustNew(nil, P("n", int64(1<<53+1)))
	rounded := MustNew(nil, P("n", float64(1<<53)))
	assert.False(t, big.Equals(rounded))

	f1, err := big.Fingerprint()
	require.NoError(t, err)
	f2, err := rounded.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, f1, f2)
}
