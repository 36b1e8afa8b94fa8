package customize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		company   string
		title     string
		want      string
	}{
		{"illegal characters", "张三", "Acme/Corp", "后端:工程师", "张三_Acme_Corp_后端_工程师.txt"},
		{"no candidate", "", "Acme", "Go", "resume_Acme_Go.txt"},
		{"whitespace collapses", "张三", "Acme  Inc", "Go 工程师", "张三_Acme_Inc_Go_工程师.txt"},
		{"empty company", "张三", "", "Go", "张三_Go.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.candidate, tt.company, tt.title))
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "resume", "resume"},
		{"only illegal", `///??`, DefaultFileStem},
		{"empty", "", DefaultFileStem},
		{"control characters", "a\x00b\x1fc", "a_b_c"},
		{"edge underscores", "__a__b__", "a_b"},
		{"quotes and pipes", `a"b|c<d>e`, "a_b_c_d_e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.raw))
		})
	}
}

func TestSanitizeFileName_Caps(t *testing.T) {
	got := SanitizeFileName(strings.Repeat("简", 300))
	assert.Equal(t, maxFileStemRunes, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestSanitizeFileName_Idempotent(t *testing.T) {
	for _, raw := range []string{"张三_Acme/Corp", "  a  b  ", `x:y*z`, ""} {
		once := SanitizeFileName(raw)
		assert.Equal(t, once, SanitizeFileName(once), raw)
	}
}
