package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// banner.txt holds the art, a blank line, then the tagline.
//
//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the startup banner centred for the current
// terminal width.
func RenderBanner() string {
	return renderBanner(termWidth())
}

// renderBanner centres the art as one block so its columns stay aligned,
// and the tagline on its own. Nothing is padded when width is narrower
// than the art.
func renderBanner(width int) string {
	art, tagline, _ := strings.Cut(strings.TrimRight(bannerRaw, "\n"), "\n\n")

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, BannerStyle.Render(art)))
	b.WriteByte('\n')
	if tagline = strings.TrimSpace(tagline); tagline != "" {
		b.WriteByte('\n')
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, secondaryStyle.Italic(true).Render(tagline)))
		b.WriteByte('\n')
	}
	return b.String()
}

func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
