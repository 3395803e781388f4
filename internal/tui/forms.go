package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jakoblorz/go-depextract/internal/models"
)

// SettingsValues backs the settings form
type SettingsValues struct {
	Framework     string
	MappingsText  string
	ParseIncludes bool
}

// NewSettingsValues prepares form values from the current settings
func NewSettingsValues(framework models.Framework, mappings []models.PrefixMapping, parseIncludes bool) *SettingsValues {
	return &SettingsValues{
		Framework:     string(framework),
		MappingsText:  models.FormatPrefixMappings(mappings),
		ParseIncludes: parseIncludes,
	}
}

// Parse converts the edited values back to typed settings
func (v *SettingsValues) Parse() (models.Framework, []models.PrefixMapping, error) {
	framework, err := models.ParseFramework(v.Framework)
	if err != nil {
		return "", nil, err
	}
	mappings, err := models.ParsePrefixMappings(v.MappingsText)
	if err != nil {
		return "", nil, err
	}
	return framework, mappings, nil
}

// NewSettingsForm builds the settings editor: framework, prefix mappings
// and include parsing.
func NewSettingsForm(v *SettingsValues) *huh.Form {
	frameworks := make([]huh.Option[string], 0, len(models.AllFrameworks()))
	for _, f := range models.AllFrameworks() {
		frameworks = append(frameworks, huh.NewOption(f.String(), f.String()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Framework").
				Options(frameworks...).
				Value(&v.Framework),
			huh.NewText().
				Title("Prefix mappings").
				Description("One prefix=dir per line, e.g. Model_=application/models/").
				Lines(8).
				Value(&v.MappingsText).
				Validate(func(s string) error {
					_, err := models.ParsePrefixMappings(s)
					return err
				}),
			huh.NewConfirm().
				Title("Parse include/require statements?").
				Value(&v.ParseIncludes),
		).
			Title("Settings").
			Description("Applied to the next scan and analysis."),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(true)
}

// NewPathForm builds a single-input form for a directory path
func NewPathForm(title, description string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder("/path/to/project").
				Value(value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(true)
}

// NewConfirmForm builds a yes/no form
func NewConfirmForm(title, description string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(true)
}
