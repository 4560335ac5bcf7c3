// Package roman converts the roman numeral tokens that list files use to
// distinguish same-titled productions released in the same year.
//
// A title line such as `Hamlet (1996/II)` carries the numeral after the
// slash. Callers turn the converted value into a 1-based disambiguating
// index with value+1; a line with no suffix is index 1 without involving
// this package. Conversion is strict: only canonical numerals are accepted,
// so malformed tokens surface as parse errors instead of bogus indexes.
package roman
