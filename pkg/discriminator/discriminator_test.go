package discriminator

import (
	"testing"
)

func TestForInstruction(t *testing.T) {
	tests := []struct {
		name     string
		expected Discriminator
	}{
		{
			name:     "swap_base_input",
			expected: Discriminator{143, 190, 90, 218, 196, 30, 51, 222},
		},
		{
			name:     "swap_base_output",
			expected: Discriminator{55, 217, 98, 86, 163, 74, 180, 173},
		},
		{
			name:     "swap",
			expected: Discriminator{248, 198, 158, 145, 225, 117, 135, 200},
		},
		{
			name:     "swap_v2",
			expected: Discriminator{43, 4, 237, 11, 26, 201, 30, 98},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ForInstruction(tt.name)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	d, err := FromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Discriminator{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("unexpected discriminator %v", d)
	}

	if _, err := FromBytes([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for short data")
	}
}

func TestString(t *testing.T) {
	d := Discriminator{0x37, 0xd9, 0x62, 0x56, 0xa3, 0x4a, 0xb4, 0xad}
	if d.String() != "37d96256a34ab4ad" {
		t.Errorf("unexpected hex %s", d.String())
	}
}

func TestMatch(t *testing.T) {
	discs := []Discriminator{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{8, 7, 6, 5, 4, 3, 2, 1},
		{0, 0, 0, 0, 0, 0, 0, 1},
	}

	matcher := NewMatcher(discs...)

	tests := []struct {
		name     string
		target   Discriminator
		expected int
	}{
		{"first discriminator", Discriminator{1, 2, 3, 4, 5, 6, 7, 8}, 0},
		{"second discriminator", Discriminator{8, 7, 6, 5, 4, 3, 2, 1}, 1},
		{"third discriminator", Discriminator{0, 0, 0, 0, 0, 0, 0, 1}, 2},
		{"not found", Discriminator{9, 9, 9, 9, 9, 9, 9, 9}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.Match(tt.target)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}

	if matcher.Len() != 3 {
		t.Errorf("expected 3 discriminators, got %d", matcher.Len())
	}
}

func TestMatchData(t *testing.T) {
	matcher := NewMatcher(ForInstruction("swap_base_input"), ForInstruction("swap_base_output"))

	data := append(ForInstruction("swap_base_output").Bytes(), 0xff, 0xff)
	if idx := matcher.MatchData(data); idx != 1 {
		t.Errorf("expected 1, got %d", idx)
	}

	if idx := matcher.MatchData([]byte{143, 190}); idx != -1 {
		t.Errorf("expected -1 for short data, got %d", idx)
	}
}

func TestMatchDuplicateKeepsFirst(t *testing.T) {
	d := Discriminator{1, 1, 1, 1, 1, 1, 1, 1}
	matcher := NewMatcher(d, d)
	if idx := matcher.Match(d); idx != 0 {
		t.Errorf("expected first index, got %d", idx)
	}
}
