package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"national with trunk prefix", "098765 43210", "+919876543210"},
		{"already e164", "+919876543210", "+919876543210"},
		{"international", "+31 6 12345678", "+31612345678"},
		{"whitespace trimmed", "  98765 43210  ", "+919876543210"},
		{"unparseable kept", "ext. 42", "ext. 42"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
