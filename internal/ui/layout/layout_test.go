package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"https://images.cheeselab.dev/soft/camembert.jpg", 15, "https:/…ert.jpg"},
		{"abcdef", 4, "abcdef"},
		{"abcdef", 5, "ab…ef"},
	}
	for _, tt := range tests {
		got := Shorten(tt.in, tt.max)
		assert.Equal(t, tt.want, got)
		if len([]rune(tt.in)) > tt.max && tt.max >= 5 {
			assert.Equal(t, tt.max, len([]rune(got)))
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Quiz", "dev-img-01  2/3", 80)
	assert.Contains(t, out, "Cheese Quiz")
	assert.Contains(t, out, "Quiz")
	assert.Contains(t, out, "dev-img-01  2/3")
	assert.Equal(t, 3, lipgloss.Height(out))
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "r", Description: "Reload"}, {Key: "g", Description: "Grade"}}, 80)
	assert.Contains(t, out, "Reload")
	assert.Contains(t, out, "Grade")
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Quiz", "", 80)
	footer := RenderFooter(nil, 80)
	out := RenderFrame(header, "body", footer, 80, 24)
	assert.Equal(t, 24, strings.Count(out, "\n")+1)
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}
