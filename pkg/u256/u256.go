// Package u256 converts human-readable token amounts to the (low, high)
// u128 limb pair used by Starknet contract calldata, and back.
//
// Amounts are decimal strings ("1.234"). Scaling to the smallest unit is
// done with integer arithmetic only; floating point never touches a value.
package u256

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// DefaultDecimals is the fixed-point scale of the vault token (18, wei-like).
const DefaultDecimals = 18

var (
	// ErrInvalidAmount reports malformed or negative decimal input.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOverflow reports a value that does not fit in 256 bits.
	ErrOverflow = errors.New("value overflows uint256")
)

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// Uint256 is an unsigned 256-bit integer split into two u128 limbs,
// value = High * 2^128 + Low. Limbs are lowercase 0x-prefixed hex with no
// width padding ("0x0" for zero), matching the contract ABI calldata form.
type Uint256 struct {
	Low     string `json:"low"`
	High    string `json:"high"`
	Integer string `json:"integer"` // scaled value as a decimal string
}

// Encode scales a decimal amount by 10^decimals and splits it into limbs.
// A fractional part longer than decimals is truncated, not rounded.
func Encode(amount string, decimals int) (Uint256, error) {
	wei, err := parseAmount(amount, decimals)
	if err != nil {
		return Uint256{}, err
	}
	return FromInteger(wei)
}

// EncodeFloat encodes a numeric amount via its exact shortest decimal
// representation. Never multiply a float by 10^decimals directly.
func EncodeFloat(amount float64, decimals int) (Uint256, error) {
	return Encode(strconv.FormatFloat(amount, 'f', -1, 64), decimals)
}

// FromInteger splits an already scaled non-negative integer into limbs.
func FromInteger(v *big.Int) (Uint256, error) {
	if v == nil || v.Sign() < 0 {
		return Uint256{}, fmt.Errorf("%w: negative integer value", ErrInvalidAmount)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return Uint256{}, ErrOverflow
	}
	var lo, hi uint256.Int
	lo[0], lo[1] = u[0], u[1]
	hi[0], hi[1] = u[2], u[3]
	return Uint256{
		Low:     lo.Hex(),
		High:    hi.Hex(),
		Integer: v.String(),
	}, nil
}

// Decode recombines a limb pair and formats it as a decimal amount.
// The fractional part is zero-padded to decimals digits, then trailing
// zeros are trimmed; a zero fraction yields just the whole part.
func Decode(low, high string, decimals int) (string, error) {
	v, err := ToInteger(low, high)
	if err != nil {
		return "", err
	}
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative decimals %d", ErrInvalidAmount, decimals)
	}
	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(v, base, new(big.Int))
	fracStr := strings.TrimRight(leftPad(frac.String(), decimals), "0")
	if fracStr == "" {
		return whole.String(), nil
	}
	return whole.String() + "." + fracStr, nil
}

// ToInteger recombines a limb pair into high * 2^128 + low.
func ToInteger(low, high string) (*big.Int, error) {
	lo, err := parseLimb(low)
	if err != nil {
		return nil, fmt.Errorf("low limb: %w", err)
	}
	hi, err := parseLimb(high)
	if err != nil {
		return nil, fmt.Errorf("high limb: %w", err)
	}
	v := new(big.Int).Mul(hi, two128)
	return v.Add(v, lo), nil
}

// parseAmount converts "<integer>[.<fraction>]" into value * 10^decimals.
// Missing integer or fraction parts count as zero.
func parseAmount(amount string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("%w: negative decimals %d", ErrInvalidAmount, decimals)
	}
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, amount)
	}
	whole, frac := s, ""
	if i := strings.Index(s, "."); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if strings.Contains(frac, ".") {
			return nil, fmt.Errorf("%w: multiple decimal points in %q", ErrInvalidAmount, amount)
		}
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, amount)
	}
	if len(frac) > decimals {
		// Excess fractional digits are dropped, never rounded.
		frac = frac[:decimals]
	}
	frac = rightPad(frac, decimals)

	w, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	v := w.Mul(w, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	if frac != "" {
		f, ok := new(big.Int).SetString(frac, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
		}
		v.Add(v, f)
	}
	return v, nil
}

// parseLimb accepts a 0x-prefixed hex felt or a plain decimal felt, the two
// encodings RPC nodes hand back, and enforces the u128 range.
func parseLimb(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	var v *big.Int
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty limb", ErrInvalidAmount)
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		// hexutil insists on canonical form; strip leading zero digits first.
		digits := strings.TrimLeft(strings.ToLower(s[2:]), "0")
		if digits == "" {
			digits = "0"
		}
		b, err := hexutil.DecodeBig("0x" + digits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
		}
		v = b
	default:
		b, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a felt", ErrInvalidAmount, s)
		}
		v = b
	}
	if v.Sign() < 0 || v.Cmp(two128) >= 0 {
		return nil, fmt.Errorf("%w: limb %q out of u128 range", ErrInvalidAmount, s)
	}
	return v, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func rightPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("0", width-len(s))
}
