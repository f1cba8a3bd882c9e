// Package core holds the pure domain logic of the donor portal: money
// handling, funding validation, catalog filtering and donation rollups.
// Nothing in this package performs I/O.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToPaise converts a decimal amount string to paise with
// half-up rounding on the third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) separators. Only strictly
// positive amounts are valid; signs, empty input and non-digit characters
// return ErrInvalidAmount.
func ParseDecimalToPaise(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracPaise int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracPaise = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracPaise += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracPaise++
			}
		}
	}
	paise := iv*100 + fracPaise
	if paise <= 0 {
		return 0, ErrInvalidAmount
	}
	return paise, nil
}

// PaiseFromRupees converts a wire-format rupee amount (the backend sends
// plain JSON numbers) to paise. The backend representation is preserved
// exactly up to the paisa.
func PaiseFromRupees(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}

// Rupees returns the rupee value as a float64 for the wire format.
// Use paise for all calculations.
func (m Money) Rupees() float64 {
	return float64(m.Paise) / 100.0
}

// String formats the amount with the fixed currency symbol, e.g. "₹600.00".
func (m Money) String() string {
	paise := m.Paise
	neg := paise < 0
	if neg {
		paise = -paise
	}
	s := strconv.FormatInt(paise/100, 10) + "." + fmt.Sprintf("%02d", paise%100)
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
