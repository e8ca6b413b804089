package web

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		s    string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tc := range cases {
		if got := truncate(tc.s, tc.n); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.s, tc.n, got, tc.want)
		}
	}
}

func TestFormatTime_ZeroIsEmpty(t *testing.T) {
	require.Empty(t, formatTime(time.Time{}))
	require.NotEmpty(t, formatTime(time.Now()))
}

func TestRenderMarkdown_SanitizesScripts(t *testing.T) {
	out := string(renderMarkdown("# Title\n\n<script>alert(1)</script>\n\n**bold**"))

	require.Contains(t, out, "<h1")
	require.Contains(t, out, "<strong>bold</strong>")
	require.NotContains(t, out, "<script>")
}

func TestNewRenderer_MissingDirFails(t *testing.T) {
	_, err := NewRenderer("does-not-exist")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "templates"))
}
