package roman

import (
	"fmt"
	"strings"
)

var digitValues = map[byte]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// subtractable lists which digit may precede which larger digit in a
// canonical numeral (IV, IX, XL, XC, CD, CM).
var subtractable = map[byte]byte{
	'I': 'X',
	'X': 'C',
	'C': 'M',
}

// Convert parses a canonical roman numeral and returns its integer value.
// Input is case-sensitive upper. Non-canonical forms such as "IIII" or "VX"
// are rejected.
func Convert(token string) (int, error) {
	if token == "" {
		return 0, fmt.Errorf("roman: empty token")
	}

	total := 0
	i := 0
	for i < len(token) {
		c := token[i]
		value, ok := digitValues[c]
		if !ok {
			return 0, fmt.Errorf("roman: invalid character %q in %q", c, token)
		}

		// Subtractive pair: a smaller digit directly before a larger one.
		if i+1 < len(token) {
			next := token[i+1]
			nextValue, ok := digitValues[next]
			if !ok {
				return 0, fmt.Errorf("roman: invalid character %q in %q", next, token)
			}
			if nextValue > value {
				limit, canSubtract := subtractable[c]
				if !canSubtract || (next != limit && nextValue != value*5) {
					return 0, fmt.Errorf("roman: invalid subtraction %q in %q", token[i:i+2], token)
				}
				total += nextValue - value
				i += 2
				// After a subtractive pair no digit of equal or greater
				// value may follow in a canonical numeral.
				if i < len(token) && digitValues[token[i]] >= value {
					return 0, fmt.Errorf("roman: non-canonical ordering in %q", token)
				}
				continue
			}
		}

		// Run of identical digits: V, L, D never repeat; others at most 3.
		run := 1
		for i+run < len(token) && token[i+run] == c {
			run++
		}
		switch c {
		case 'V', 'L', 'D':
			if run > 1 {
				return 0, fmt.Errorf("roman: digit %q repeated in %q", c, token)
			}
		default:
			if run > 3 {
				return 0, fmt.Errorf("roman: digit %q repeated %d times in %q", c, run, token)
			}
		}

		// Digits after the run must be strictly smaller (or start a valid
		// subtractive pair, handled on the next iteration).
		if i+run < len(token) && digitValues[token[i+run]] >= value {
			return 0, fmt.Errorf("roman: non-canonical ordering in %q", token)
		}

		total += value * run
		i += run
	}

	return total, nil
}

// IsNumeral reports whether token consists solely of roman numeral
// characters. It does not validate canonical form; use Convert for that.
func IsNumeral(token string) bool {
	if token == "" {
		return false
	}
	return strings.IndexFunc(token, func(r rune) bool {
		return !strings.ContainsRune("IVXLCDM", r)
	}) == -1
}
