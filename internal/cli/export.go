package cli

import (
	"fmt"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-depextract/internal/export"
	"github.com/jakoblorz/go-depextract/internal/plan"
)

// ExportCommand replays a plan and copies its export set
type ExportCommand struct {
	*env

	planFile     string
	output       string
	templateFile string
	dryRun       bool
}

// NewExportCommand creates a new export command
func NewExportCommand(e *env) *cobra.Command {
	cmd := &ExportCommand{env: e}

	cobraCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the files of a saved plan",
		Long: `Replays a plan without the interactive browser: scans its project,
selects its files, analyzes them, checks the listed includes and copies
the resulting file set.

With --dry-run nothing is copied; a manifest of the export set is printed
instead. The manifest is a Go text/template with the sprig functions
available; use --template to supply your own.`,
		Example: `  # Export a plan saved from the browser
  depextract export --plan plans/plan-x3k9q2ab.md

  # Preview what would be copied
  depextract export --plan plans/plan-x3k9q2ab.md --dry-run

  # Copy somewhere else
  depextract export --plan plans/plan-x3k9q2ab.md --output /tmp/extract`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.planFile, "plan", "", "Plan file to replay")
	cobraCmd.Flags().StringVar(&cmd.output, "output", "", "Output directory (overrides the plan)")
	cobraCmd.Flags().StringVar(&cmd.templateFile, "template", "", "Manifest template for --dry-run")
	cobraCmd.Flags().BoolVar(&cmd.dryRun, "dry-run", false, "Print the manifest instead of copying")
	_ = cobraCmd.MarkFlagRequired("plan")

	return cobraCmd
}

// Run executes the export command
func (c *ExportCommand) Run(cmd *cobra.Command, args []string) error {
	tmpl, err := c.loadTemplate()
	if err != nil {
		return err
	}

	p, err := plan.NewManager(c.fs, "").Read(c.planFile)
	if err != nil {
		return err
	}

	rt, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	s := rt.newSession()
	if err := p.Apply(cmd.Context(), s); err != nil {
		return fmt.Errorf("failed to replay plan: %w", err)
	}
	if c.output != "" {
		s.SetOutputDir(c.output)
	}

	out := cmd.OutOrStdout()

	if c.dryRun {
		manifest := export.BuildManifest(s.Store(), s.Project(), s.OutputDir(), rt.now())
		text, err := export.RenderManifest(tmpl, manifest)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, text)
		return nil
	}

	outcome, err := s.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	_, _ = fmt.Fprintln(out, outcome.Summary())
	for _, e := range outcome.Errors {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
	}
	rt.logger.Info("plan exported", "plan", c.planFile, "copied", len(outcome.Copied), "errors", len(outcome.Errors))
	return nil
}

// loadTemplate reads --template; nil means the default manifest
func (c *ExportCommand) loadTemplate() (*template.Template, error) {
	if c.templateFile == "" {
		return nil, nil
	}
	data, err := c.fs.ReadFile(c.templateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return export.ParseManifestTemplate(string(data))
}
