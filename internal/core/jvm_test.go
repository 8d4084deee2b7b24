package core

import "testing"

func TestCompatScore(t *testing.T) {
	cases := []struct {
		required, detected int
		wantScore          int
		wantOK             bool
	}{
		{8, 8, 0, true},
		{8, 9, 0, false},
		{9, 11, 2, true},
		{17, 11, 0, false},
	}
	for _, c := range cases {
		score, ok := CompatScore(c.required, c.detected)
		if ok != c.wantOK {
			t.Errorf("CompatScore(%d,%d) ok = %v, want %v", c.required, c.detected, ok, c.wantOK)
			continue
		}
		if ok && score != c.wantScore {
			t.Errorf("CompatScore(%d,%d) = %d, want %d", c.required, c.detected, score, c.wantScore)
		}
	}
}

func TestParseJVMMajor(t *testing.T) {
	cases := map[string]int{
		"1.8.0_111": 8,
		"17.0.2":    17,
		"8u51":      8,
	}
	for in, want := range cases {
		got, ok := ParseJVMMajor(in)
		if !ok || got != want {
			t.Errorf("ParseJVMMajor(%q) = (%d,%v), want %d", in, got, ok, want)
		}
	}
}
