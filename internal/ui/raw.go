package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	rawTitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Bold(true)

	rawContentStyle = lipgloss.NewStyle().
			Foreground(TextColor)
)

// RawResponse is a box showing the undecoded service response in verbose mode.
type RawResponse struct {
	Title    string
	Lines    []string
	Width    int
	MaxLines int // 0 = unlimited
}

// NewRawResponse creates a raw response box
func NewRawResponse(body string) *RawResponse {
	return &RawResponse{
		Title: "Service Response",
		Lines: strings.Split(body, "\n"),
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *RawResponse) SetWidth(width int) *RawResponse {
	r.Width = width
	return r
}

// SetMaxLines limits the number of lines displayed
func (r *RawResponse) SetMaxLines(n int) *RawResponse {
	r.MaxLines = n
	return r
}

// Render returns the styled box
func (r *RawResponse) Render() string {
	lines := r.Lines
	truncated := 0
	if r.MaxLines > 0 && len(lines) > r.MaxLines {
		truncated = len(lines) - r.MaxLines
		lines = lines[:r.MaxLines]
	}

	body := rawContentStyle.Render(strings.Join(lines, "\n"))
	if truncated > 0 {
		body += "\n" + StepNoteStyle.Render("... "+strconv.Itoa(truncated)+" more lines")
	}

	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width-4).
		Padding(0, 1).
		Render(rawTitleStyle.Render(r.Title) + "\n" + body)
}

// String implements fmt.Stringer
func (r *RawResponse) String() string {
	return r.Render()
}
