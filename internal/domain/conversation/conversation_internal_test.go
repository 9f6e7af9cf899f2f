package conversation

import (
	"strings"
	"testing"
)

func TestTitleFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short stays intact", "hello", "hello"},
		{"exactly the cap", strings.Repeat("a", 80), strings.Repeat("a", 80)},
		{"long is cut", strings.Repeat("a", 81), strings.Repeat("a", 80)},
		{"multibyte runes are not split", strings.Repeat("é", 100), strings.Repeat("é", 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFrom(tt.input); got != tt.want {
				t.Errorf("TitleFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAssistant, RoleSystem} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	if ValidRole("moderator") {
		t.Errorf("ValidRole(moderator) = true")
	}
}
