package attendance

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"present", StatusPresent, true},
		{"Present", StatusPresent, true},
		{"PRESENT", StatusPresent, true},
		{"  absent ", StatusAbsent, true},
		{"ABSENT", StatusAbsent, true},
		{"late", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeStatus(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	valid := []string{
		"2024-01-05",
		"2024-01-05 10:30:00",
		"2024-01-05T10:30:00",
		" 2024-01-05 ",
	}
	for _, in := range valid {
		day, err := NormalizeDate(in)
		if err != nil {
			t.Errorf("NormalizeDate(%q): %v", in, err)
			continue
		}
		if got := day.Format("2006-01-02"); got != "2024-01-05" {
			t.Errorf("NormalizeDate(%q) = %s, want 2024-01-05", in, got)
		}
	}

	invalid := []string{"", "05-01-2024", "2024-13-40", "yesterday"}
	for _, in := range invalid {
		if _, err := NormalizeDate(in); err == nil {
			t.Errorf("NormalizeDate(%q) succeeded, want error", in)
		}
	}
}
