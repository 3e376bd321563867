package utils

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber applies the parse-with-default policy used for client-entered
// amounts: numbers and numeric strings (thousands separators allowed) are
// accepted, anything else and negative values become zero. It never fails.
func ParseNumber(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Number is a JSON number that decodes with ParseNumber and encodes as a
// plain JSON number.
type Number struct {
	decimal.Decimal
}

func NewNumber(f float64) Number {
	return Number{decimal.NewFromFloat(f)}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Decimal = decimal.Zero
		return nil
	}
	n.Decimal = ParseNumber(string(b))
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Decimal.InexactFloat64())
}

// OptionalID decodes a positive integer id sent either as a number or a
// string. Anything else decodes as absent.
type OptionalID struct {
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Value = nil
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	o.Value = &v
	return nil
}

// FormatWon formats an amount in Korean won with thousands separators.
// Example: 27500 -> "27,500원"
func FormatWon(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	digits := amount.Abs().Floor().String()

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String() + "원"
	}
	return b.String() + "원"
}
