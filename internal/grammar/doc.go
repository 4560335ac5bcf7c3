// Package grammar recovers structured fields from single lines of legacy
// catalog list files. One matcher exists per record kind (person name, cast
// credit, production, aka name/title, title+genre, rating, business header
// and data, location, biography name and data).
//
// Most matchers share the "title clause", the common spine of a production
// reference:
//
//	"title"? (year|????) (/roman)? ((TV|V|VG))? ({episode (#s.e)|(date)})? ({{SUSPENDED}})?
//
// The clause is expressed as named regexp fragments composed per grammar, so
// each sub-grammar stays independently testable instead of living inside one
// monolithic pattern. Matchers are pure functions over a single line; they
// report raw field text plus presence, and leave sentinel substitution and
// type conversion to the normalize package. A failed match returns ok=false
// and nothing else; diagnostics are the pipeline's concern.
package grammar
