// Package render turns an aggregated report into the Markdown block
// that is written between the document markers.
package render

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/readme-stats/internal/domain"
)

const (
	// DefaultFallbackColor is used for languages GitHub has no color for.
	DefaultFallbackColor = "#cccccc"
	// MaxBadges is the number of ranked languages shown.
	MaxBadges = 8

	badgeURL = "https://img.shields.io/static/v1?style=flat-square&label=%%E2%%A0%%80&color=555&labelColor=%%23%s&message=%s%%EF%%B8%%B1%.1f%%25"
)

// Renderer builds the Markdown block.
type Renderer struct {
	fallbackColor string
}

// NewRenderer returns a Renderer. An empty fallbackColor selects DefaultFallbackColor.
func NewRenderer(fallbackColor string) *Renderer {
	if fallbackColor == "" {
		fallbackColor = DefaultFallbackColor
	}
	return &Renderer{fallbackColor: fallbackColor}
}

// Badge renders a single shields.io image link for a ranked language.
func (r *Renderer) Badge(lang domain.LanguageTotal) string {
	color := lang.Color
	if color == "" {
		color = r.fallbackColor
	}
	color = strings.ReplaceAll(color, "#", "")
	return fmt.Sprintf("![%s](%s)", lang.Name, fmt.Sprintf(badgeURL, color, escapeLabel(lang.Name), lang.Percentage))
}

// escapeLabel makes a language name safe for the badge message.
func escapeLabel(name string) string {
	name = strings.ReplaceAll(name, " ", "%20")
	return strings.ReplaceAll(name, "-", "--")
}

// Render composes the full block: greeting, join age, totals and badges.
func (r *Renderer) Render(report *domain.Report) string {
	var badges strings.Builder
	for i, lang := range report.Languages {
		if i == MaxBadges {
			break
		}
		badges.WriteString(r.Badge(lang))
		badges.WriteString("\n")
	}

	c := report.Contributions
	var b strings.Builder
	b.WriteString("\nHi There!\n\n")
	fmt.Fprintf(&b, "Joined Github **%d** years ago.\n\n", report.YearsJoined)
	fmt.Fprintf(&b, "Since then I pushed **%d** commits, opened **%d** issues, submitted **%d** pull requests, received **%d** stars across **%d** personal projects.\n\n",
		c.Commits, c.Issues, c.PullRequests, report.Stars, report.RepositoryCount)
	b.WriteString("Most used languages across my projects:\n\n")
	b.WriteString(badges.String())
	return b.String()
}
