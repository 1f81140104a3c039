package u256

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		integer  string
		low      string
		high     string
	}{
		{"one token", "1", 18, "1000000000000000000", "0xde0b6b3a7640000", "0x0"},
		{"half token", "0.5", 18, "500000000000000000", "0x6f05b59d3b20000", "0x0"},
		{"zero", "0", 18, "0", "0x0", "0x0"},
		{"fraction only", ".25", 18, "250000000000000000", "0x3782dace9d90000", "0x0"},
		{"trailing dot", "3.", 18, "3000000000000000000", "0x29a2241af62c0000", "0x0"},
		{"no fraction digits", "2.000000000000000000", 18, "2000000000000000000", "0x1bc16d674ec80000", "0x0"},
		{"zero decimals", "42", 0, "42", "0x2a", "0x0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.integer, got.Integer)
			assert.Equal(t, tt.low, got.Low)
			assert.Equal(t, tt.high, got.High)
		})
	}
}

func TestEncodeTruncatesExcessFraction(t *testing.T) {
	long, err := Encode("1.23456789", 2)
	require.NoError(t, err)
	short, err := Encode("1.23", 2)
	require.NoError(t, err)

	// Excess fractional digits are dropped, never rounded.
	assert.Equal(t, "123", long.Integer)
	assert.Equal(t, short.Integer, long.Integer)

	down, err := Encode("1.999", 0)
	require.NoError(t, err)
	assert.Equal(t, "1", down.Integer)
}

func TestEncodeRejectsMalformedInput(t *testing.T) {
	for _, amount := range []string{"", "-1", "-0.5", "1.2.3", "abc", "1,5", "1e18", " "} {
		_, err := Encode(amount, 18)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}
}

func TestEncodeFloat(t *testing.T) {
	got, err := EncodeFloat(0.1, 18)
	require.NoError(t, err)
	// 0.1 must go through its decimal string form, not float scaling,
	// so the result is exactly 10^17 with no binary-float residue.
	assert.Equal(t, "100000000000000000", got.Integer)

	_, err = EncodeFloat(-2, 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFromIntegerOverflow(t *testing.T) {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err := FromInteger(max)
	assert.ErrorIs(t, err, ErrOverflow)

	ok, err := FromInteger(new(big.Int).Sub(max, big.NewInt(1)))
	require.NoError(t, err)
	assert.Equal(t, "0xffffffffffffffffffffffffffffffff", ok.Low)
	assert.Equal(t, "0xffffffffffffffffffffffffffffffff", ok.High)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		low      string
		high     string
		decimals int
		want     string
	}{
		{"one token", "0xde0b6b3a7640000", "0x0", 18, "1"},
		{"half token", "0x6f05b59d3b20000", "0x0", 18, "0.5"},
		{"zero", "0x0", "0x0", 18, "0"},
		{"dust", "0x1", "0x0", 18, "0.000000000000000001"},
		{"decimal felt input", "1000000000000000000", "0", 18, "1"},
		{"nonzero high limb", "0x0", "0x1", 0, "340282366920938463463374607431768211456"},
		{"uppercase hex", "0xDE0B6B3A7640000", "0x0", 18, "1"},
		{"leading zero digits", "0x0de0b6b3a7640000", "0x00", 18, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.low, tt.high, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRejectsBadLimbs(t *testing.T) {
	// A limb must fit in 128 bits.
	_, err := Decode("0x100000000000000000000000000000000", "0x0", 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Decode("", "0x0", 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Decode("0xzz", "0x0", 18)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRoundTrip(t *testing.T) {
	amounts := []string{"1", "0.5", "100000000000000", "0.000000000000000001", "123456.789", "0"}
	for _, amount := range amounts {
		enc, err := Encode(amount, DefaultDecimals)
		require.NoError(t, err, amount)
		dec, err := Decode(enc.Low, enc.High, DefaultDecimals)
		require.NoError(t, err, amount)
		assert.Equal(t, amount, dec, "round trip of %q", amount)
	}
}

func TestToInteger(t *testing.T) {
	v, err := ToInteger("0x5", "0x2")
	require.NoError(t, err)

	want := new(big.Int).Lsh(big.NewInt(2), 128)
	want.Add(want, big.NewInt(5))
	assert.Zero(t, v.Cmp(want))
}
