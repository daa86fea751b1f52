package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseRate(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"15", "15", true},
		{"0", "0", true},
		{"", "0", true}, // missing rate defaults to zero
		{"7,5", "7.5", true},
		{"-5", "", false},
		{"x", "", false},
	}
	for _, tc := range cases {
		got, err := ParseRate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct{ in, out string }{
		{"35.7075", "35.71"},
		{"35.704", "35.7"},
		{"35.705", "35.71"}, // half up
		{"-1.005", "-1.01"},
		{"2", "2"},
	}
	for _, tc := range cases {
		if got := Display(dec(tc.in)); !got.Equal(dec(tc.out)) {
			t.Fatalf("Display(%s) = %s, want %s", tc.in, got, tc.out)
		}
	}
}
