package textutil_test

import (
	"testing"

	"cinelist/internal/textutil"
)

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Die   Hard \t ", "Die Hard"},
		{"one\ttwo\nthree", "one two three"},
		{"already clean", "already clean"},
	}
	for _, tc := range cases {
		if got := textutil.CollapseWhitespace(tc.in); got != tc.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSourceDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "Unknown List"},
		{"lists/actors.list", "Actors"},
		{"lists/opening-weekend.list", "Opening Weekend"},
		{"/data/movie_ratings.list", "Movie Ratings"},
	}
	for _, tc := range cases {
		if got := textutil.SourceDisplayName(tc.in); got != tc.want {
			t.Errorf("SourceDisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
