package roman_test

import (
	"testing"

	"cinelist/internal/roman"
)

func TestConvertValid(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"I", 1},
		{"II", 2},
		{"III", 3},
		{"IV", 4},
		{"V", 5},
		{"IX", 9},
		{"X", 10},
		{"XIV", 14},
		{"XIX", 19},
		{"XL", 40},
		{"XC", 90},
		{"CD", 400},
		{"CM", 900},
		{"MCMXCIV", 1994},
		{"MMXXVI", 2026},
	}
	for _, tc := range cases {
		got, err := roman.Convert(tc.token)
		if err != nil {
			t.Errorf("Convert(%q) returned error: %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Convert(%q) = %d, want %d", tc.token, got, tc.want)
		}
	}
}

func TestConvertRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"IIII",
		"VX",
		"VV",
		"LL",
		"DD",
		"IL",
		"IC",
		"IXI",
		"IXX",
		"XXC",
		"iv",
		"X I",
		"ABC",
	}
	for _, token := range cases {
		if got, err := roman.Convert(token); err == nil {
			t.Errorf("Convert(%q) = %d, want error", token, got)
		}
	}
}

func TestIsNumeral(t *testing.T) {
	if !roman.IsNumeral("XIV") {
		t.Error("expected XIV to be a numeral")
	}
	if roman.IsNumeral("") || roman.IsNumeral("xiv") || roman.IsNumeral("X1V") {
		t.Error("expected non-numeral tokens to be rejected")
	}
}
