package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-depextract/internal/plan"
	"github.com/jakoblorz/go-depextract/internal/tui/browser"
)

// BrowseCommand runs the interactive browser
type BrowseCommand struct {
	*env

	project  string
	plansDir string
}

// NewBrowseCommand creates a new browse command
func NewBrowseCommand(e *env) *cobra.Command {
	cmd := &BrowseCommand{env: e}

	cobraCmd := &cobra.Command{
		Use:   "browse [PROJECT]",
		Short: "Browse a project and export files interactively",
		Long: `Opens the interactive file tree.

Pick files with space, analyze them with a, review dependencies and
include references on the right and export with x. Press ? for all keys.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}
	cmd.bindBrowseFlags(cobraCmd)

	return cobraCmd
}

func (c *BrowseCommand) bindBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.project, "project", "", "Project directory to scan on start")
	cmd.Flags().StringVar(&c.plansDir, "plans-dir", "", "Directory for saved plans (default: <config dir>/plans)")
}

// Run executes the browse command
func (c *BrowseCommand) Run(cmd *cobra.Command, args []string) error {
	project := c.project
	if len(args) == 1 {
		project = args[0]
	}

	rt, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	s := rt.newSession()
	if project != "" {
		s.SetProject(project)
	}

	plansDir := c.plansDir
	if plansDir == "" {
		plansDir = filepath.Join(filepath.Dir(rt.path), "plans")
	}

	model := browser.New(s, browser.Options{
		Plans:        plan.NewManager(c.fs, plansDir),
		ScanOnStart:  project != "",
		LoadSettings: len(rt.cfg.Mappings) == 0,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	rt.logger.Info("browser closed", "project", s.Project(), "selected", s.Store().SelectedCount())
	return nil
}
