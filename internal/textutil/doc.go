// Package textutil provides small text helpers shared by the normalize and
// cmd packages: whitespace collapsing and display names for list sources.
package textutil
