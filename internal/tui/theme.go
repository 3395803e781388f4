package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	orange = lipgloss.Color("#D9822B")
	blue   = lipgloss.Color("#2F6FDB")
	gray   = lipgloss.Color("#888888")
	white  = lipgloss.Color("#FFFFFF")
)

// NewHuhTheme returns the orange/blue theme used by every form
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(blue)
	t.Focused.Title = t.Focused.Title.Foreground(orange).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(orange).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(gray)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(lipgloss.Color("#FF0000"))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color("#FF0000"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(orange)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(orange)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(blue)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(blue).SetString("[✓] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(gray).SetString("[ ] ")
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(white).Background(orange)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(gray)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(orange)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(blue)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(gray)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	return t
}
