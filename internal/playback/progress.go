package playback

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	barWidth  = 30
	nameWidth = 40
)

var statusStyle = lipgloss.NewStyle().Bold(true)

// progressLine renders one line of sequencer output: a bar for tracks
// finished so far, a counter, the file name and a status word.
type progressLine struct {
	bar progress.Model
}

func newProgressLine() progressLine {
	return progressLine{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
	}
}

func (p progressLine) render(done, total int, track, status string) string {
	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}

	name := ""
	if track != "" {
		name = filepath.Base(track)
	}

	return fmt.Sprintf("%s %d/%d %s %s",
		p.bar.ViewAs(percent),
		done, total,
		padToWidth(name, nameWidth),
		statusStyle.Render(status),
	)
}

// padToWidth pads or truncates text to a fixed display width, counting
// columns rather than bytes. Truncated text ends in "...".
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	return runewidth.FillRight(runewidth.Truncate(text, width, "..."), width)
}
