package words

import "testing"

func TestCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "whitespace only", input: "  \t\n ", want: 0},
		{name: "single", input: "hello", want: 1},
		{name: "mixed whitespace", input: "one\ttwo\nthree  four", want: 4},
		{name: "punctuation stays attached", input: "well-known, surely.", want: 2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Count(tc.input); got != tc.want {
				t.Fatalf("Count(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}
