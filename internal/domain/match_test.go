package domain

import (
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "jacket", b: "jacket", want: 0},
		{name: "case insensitive", a: "Jacket", b: "jACKET", want: 0},
		{name: "single substitution", a: "jaket", b: "jacet", want: 1},
		{name: "single insertion", a: "jaket", b: "jacket", want: 1},
		{name: "kitten sitting", a: "kitten", b: "sitting", want: 3},
		{name: "empty left", a: "", b: "hat", want: 3},
		{name: "empty right", a: "hat", b: "", want: 3},
		{name: "both empty", a: "", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"jacket", "jaket"},
		{"scarf", "scarves"},
		{"", "hat"},
	}
	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      bool
	}{
		{name: "empty query matches everything", query: "", candidate: "Red Jacket", want: true},
		{name: "whole query substring", query: "jack", candidate: "Red Jacket", want: true},
		{name: "case insensitive", query: "RED JACKET", candidate: "red jacket", want: true},
		{name: "typo within threshold", query: "jaket", candidate: "Red Jacket", want: true},
		{name: "short word gets no typo allowance", query: "red jkt", candidate: "Red Jacket", want: false},
		{name: "word order ignored", query: "jacket red", candidate: "Red Jacket", want: true},
		{name: "every query word must match", query: "red scarf", candidate: "Red Jacket", want: false},
		{name: "short word without containment", query: "rd", candidate: "Red Jacket", want: false},
		{name: "candidate word inside query word", query: "jackets", candidate: "Red Jacket", want: true},
		{name: "long word threshold of two", query: "jacktes", candidate: "Red Jacket", want: true},
		{name: "typo beyond threshold", query: "jakit", candidate: "Red Jacket", want: false},
		{name: "duplicate query words", query: "red red", candidate: "Red Jacket", want: true},
		{name: "no overlap", query: "boots", candidate: "Red Jacket", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.query, tt.candidate); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.query, tt.candidate, got, tt.want)
			}
		})
	}
}
