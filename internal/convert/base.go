package convert

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Base is a supported number base.
type Base struct {
	Name  string
	Radix int
}

// Bases in display order.
var Bases = []Base{
	{Name: "Binary", Radix: 2},
	{Name: "Octal", Radix: 8},
	{Name: "Decimal", Radix: 10},
	{Name: "Hex", Radix: 16},
}

var (
	// ErrEmptyInput is returned when there is nothing to convert.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidDigits is returned when the input is not valid in its base.
	ErrInvalidDigits = errors.New("invalid digits")

	// ErrUnknownBase is returned for a base name not in Bases.
	ErrUnknownBase = errors.New("unknown base")
)

// BaseByName returns the base with the given name.
func BaseByName(name string) (Base, error) {
	for _, b := range Bases {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Base{}, fmt.Errorf("%w: %s", ErrUnknownBase, name)
}

// prefixes accepted on input, keyed by radix.
var prefixes = map[int]string{
	2:  "0b",
	8:  "0o",
	16: "0x",
}

// ParseInt parses s in the given radix. It accepts surrounding whitespace,
// a leading sign, a prefix matching the radix and "_" between digits.
func ParseInt(s string, radix int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyInput
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	if p, ok := prefixes[radix]; ok && len(s) > len(p) && strings.EqualFold(s[:len(p)], p) {
		s = strings.TrimPrefix(s[len(p):], "_")
	}

	// big.Int.SetString accepts a sign of its own; only one is allowed,
	// and only before the prefix.
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") ||
		strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_") || strings.Contains(s, "__") {
		return nil, fmt.Errorf("%w for base %d", ErrInvalidDigits, radix)
	}
	s = strings.ReplaceAll(s, "_", "")

	n, ok := new(big.Int).SetString(s, radix)
	if !ok {
		return nil, fmt.Errorf("%w for base %d", ErrInvalidDigits, radix)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// FormatInt renders n in the given radix without a prefix.
// Hex digits are upper-case.
func FormatInt(n *big.Int, radix int) string {
	out := n.Text(radix)
	if radix == 16 {
		out = strings.ToUpper(out)
	}
	return out
}

// ConvertBase converts input from one base to another.
func ConvertBase(input string, from, to Base) (string, error) {
	n, err := ParseInt(input, from.Radix)
	if err != nil {
		return "", err
	}
	return FormatInt(n, to.Radix), nil
}
