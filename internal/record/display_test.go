package record

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringAndDescribe(t *testing.T) {
	r := MustNew(nil, P("a", 1), P("b", "B"), P("c", nil))

	assert.Equal(t, "{a: 1, b: B, c: null}", r.String())
	assert.Equal(t, `Record(a = 1, b = "B", c = null)`, r.Describe())
	assert.Equal(t, r.Describe(), fmt.Sprintf("%#v", r))
	assert.Equal(t, "{}", Empty().String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "null", Format(Null{}))
	assert.Equal(t, "3.0", Format(Float(3)))
	assert.Equal(t, "[x, 1]", Format(List{String("x"), Int(1)}))
	assert.Equal(t, "{k: v}", Format(MustNew(nil, P("k", "v"))))
}

func TestDescribeFloats(t *testing.T) {
	r := MustNew(nil, P("whole", 2.0), P("frac", 0.5), P("int", 2))
	assert.Equal(t, "Record(whole = 2.0, frac = 0.5, int = 2)", r.Describe())
}

func TestShapeName(t *testing.T) {
	tests := map[string]string{
		"payload":  "Payload",
		"pay_load": "PayLoad",
		"payLoad":  "Payload",
		"a_b_c":    "ABC",
		"":         "",
		"_":        "Record",
	}
	for key, want := range tests {
		assert.Equal(t, want, shapeName(key), "key %q", key)
	}
}

func TestDisplayGolden(t *testing.T) {
	s, err := NewSchema("Packet", Declare("a"), DeclareDefault("b", 0.0))
	require.NoError(t, err)

	packet := s.MustNew(nil, P("a", 2), P("b", 6))
	require.NoError(t, packet.Set("pay_load", []Pair{P("src", "n1"), P("dst", "n2")}))
	require.NoError(t, packet.Set("tags", []any{"x", 1.5, nil}))

	out := fmt.Sprintf("string:   %s\ndescribe: %s\n", packet.String(), packet.Describe())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "packet_display", []byte(out))
}
