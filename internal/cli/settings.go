package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-depextract/internal/config"
	"github.com/jakoblorz/go-depextract/internal/models"
)

// NewSettingsCommand creates the settings command group
func NewSettingsCommand(e *env) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the analyzer's prefix mappings",
		Long: `Prefix mappings tell the analyzer where classes with a given name
prefix live, for example Model_=models/ for Zend Framework 1 projects.`,
	}

	cobraCmd.AddCommand(newSettingsGetCommand(e))
	cobraCmd.AddCommand(newSettingsSetCommand(e))

	return cobraCmd
}

// SettingsGetCommand prints the analyzer's settings
type SettingsGetCommand struct {
	*env
}

func newSettingsGetCommand(e *env) *cobra.Command {
	cmd := &SettingsGetCommand{env: e}

	return &cobra.Command{
		Use:   "get",
		Short: "Print the analyzer's framework and prefix mappings",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the settings get command
func (c *SettingsGetCommand) Run(cmd *cobra.Command, args []string) error {
	rt, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	s := rt.newSession()
	if err := s.LoadSettings(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "framework: %s\n", s.Framework())
	if len(s.Mappings()) == 0 {
		_, _ = fmt.Fprintln(out, "mappings:  (none)")
		return nil
	}
	_, _ = fmt.Fprintln(out, "mappings:")
	for _, m := range s.Mappings() {
		_, _ = fmt.Fprintf(out, "  %s\n", m)
	}
	return nil
}

// SettingsSetCommand replaces the analyzer's prefix mappings
type SettingsSetCommand struct {
	*env

	local bool
}

func newSettingsSetCommand(e *env) *cobra.Command {
	cmd := &SettingsSetCommand{env: e}

	cobraCmd := &cobra.Command{
		Use:   "set [PREFIX=DIR...]",
		Short: "Replace the prefix mappings",
		Long: `Replaces the analyzer's prefix mappings with the given ones. Without
arguments all mappings are removed.

With --local the mappings are written to the config file instead and sent
with every scan.`,
		Example: `  depextract settings set Model_=models/ Form_=forms/
  depextract settings set --local Model_=application/models/`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.local, "local", false, "Store the mappings in the config file")

	return cobraCmd
}

// Run executes the settings set command
func (c *SettingsSetCommand) Run(cmd *cobra.Command, args []string) error {
	mappings := make([]models.PrefixMapping, 0, len(args))
	for _, arg := range args {
		m, err := models.ParsePrefixMapping(arg)
		if err != nil {
			return err
		}
		mappings = append(mappings, m)
	}

	if c.local {
		path, err := c.resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load(c.fs, path)
		if err != nil {
			return err
		}
		cfg.Mappings = mappings
		if err := config.Save(c.fs, path, cfg); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d mappings to %s\n", len(mappings), path)
		return nil
	}

	rt, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	s := rt.newSession()
	if err := s.SaveSettings(cmd.Context(), mappings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), s.Status())
	return nil
}
