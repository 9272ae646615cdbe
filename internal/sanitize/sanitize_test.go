package sanitize

import (
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "double backslash becomes one",
			input: `a\\b`,
			want:  `a\b`,
		},
		{
			name:  "backslash zero becomes NUL",
			input: `a\0b`,
			want: "a\x00b",
		},
		{
			name:  "trailing lone backslash dropped",
			input: `abc\`,
			want:  "abc",
		},
		{
			name:  "other escapes collapse to the escaped char",
			input: `\n\t\x`,
			want:  "ntx",
		},
		{
			name:  "markup characters encoded",
			input: `<script>alert("hi")</script>`,
			want:  "&lt;script&gt;alert(&#34;hi&#34;)&lt;/script&gt;",
		},
		{
			name:  "ampersand encoded",
			input: "a & b",
			want:  "a &amp; b",
		},
		{
			name:  "unescape happens before encoding",
			input: `\<b\>`,
			want:  "&lt;b&gt;",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotentOnSafeText(t *testing.T) {
	// Text with no escapes and no markup passes through both stages
	// untouched, so a second pass cannot change it either.
	inputs := []string{"plain text", "with numbers 123", "unicode ✓ text"}
	for _, in := range inputs {
		once := Clean(in)
		if once != in {
			t.Errorf("Clean(%q) changed safe text to %q", in, once)
		}
		twice := Clean(once)
		if twice != once {
			t.Errorf("Clean(Clean(%q)) = %q, not idempotent", in, twice)
		}
	}
}
