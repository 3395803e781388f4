package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/filter"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/plan"
	"github.com/jakoblorz/go-depextract/internal/selection"
	"github.com/jakoblorz/go-depextract/internal/treeview"
)

// NewPlanCommand creates the plan command group
func NewPlanCommand(e *env) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "plan",
		Short: "Create and inspect saved plans",
		Long: `Plans are markdown files with YAML front matter holding a project,
its options and the selected files. Save one from the browser with p or
create one here, then replay it with 'depextract export --plan'.`,
	}

	cobraCmd.AddCommand(newPlanNewCommand(e))
	cobraCmd.AddCommand(newPlanShowCommand(e))

	return cobraCmd
}

// PlanNewCommand writes a plan without the browser
type PlanNewCommand struct {
	*env

	dir       string
	project   string
	files     []string
	includes  []string
	output    string
	noInclude bool
}

func newPlanNewCommand(e *env) *cobra.Command {
	cmd := &PlanNewCommand{env: e}

	cobraCmd := &cobra.Command{
		Use:   "new",
		Short: "Write a new plan file",
		Example: `  depextract plan new --project /srv/app \
    --file application/controllers/IndexController.php \
    --include library/App/config.php`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.dir, "dir", "", "Plan directory (default: <config dir>/plans)")
	cobraCmd.Flags().StringVar(&cmd.project, "project", "", "Project directory")
	cobraCmd.Flags().StringArrayVar(&cmd.files, "file", nil, "Selected file, relative to the project (repeatable)")
	cobraCmd.Flags().StringArrayVar(&cmd.includes, "include", nil, "Resolved include path to keep (repeatable)")
	cobraCmd.Flags().StringVar(&cmd.output, "output", "", "Output directory (default: auto)")
	cobraCmd.Flags().BoolVar(&cmd.noInclude, "no-parse-includes", false, "Do not ask the analyzer for include references")
	_ = cobraCmd.MarkFlagRequired("project")
	_ = cobraCmd.MarkFlagRequired("file")

	return cobraCmd
}

// Run executes the plan new command
func (c *PlanNewCommand) Run(cmd *cobra.Command, args []string) error {
	p := &plan.Plan{
		Project:       strings.TrimRight(c.project, "/"),
		ParseIncludes: !c.noInclude,
		Output:        c.output,
		Files:         c.files,
		Includes:      c.includes,
	}
	// the global --framework flag is stored in the plan
	if c.overrides.Framework != "" {
		fw, err := models.ParseFramework(c.overrides.Framework)
		if err != nil {
			return err
		}
		p.Framework = fw
	}

	dir := c.dir
	if dir == "" {
		path, err := c.resolveConfigPath()
		if err != nil {
			return err
		}
		dir = filepath.Join(filepath.Dir(path), "plans")
	}

	if err := plan.NewManager(c.fs, dir).Write(p); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), p.FilePath)
	return nil
}

// PlanShowCommand prints a plan and a tree preview of its files
type PlanShowCommand struct {
	*env
}

func newPlanShowCommand(e *env) *cobra.Command {
	cmd := &PlanShowCommand{env: e}

	return &cobra.Command{
		Use:   "show FILE",
		Short: "Show a plan's options and selected files",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}
}

// Run executes the plan show command
func (c *PlanShowCommand) Run(cmd *cobra.Command, args []string) error {
	p, err := plan.NewManager(c.fs, "").Read(args[0])
	if err != nil {
		return err
	}

	preview, err := planPreview(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	framework := p.Framework.String()
	if framework == "" {
		framework = models.DefaultFramework.String()
	}
	output := p.Output
	if output == "" {
		output = "auto"
	}

	_, _ = fmt.Fprintf(out, "Plan:      %s\n", p.ID)
	_, _ = fmt.Fprintf(out, "Project:   %s\n", p.Project)
	_, _ = fmt.Fprintf(out, "Framework: %s\n", framework)
	_, _ = fmt.Fprintf(out, "Includes:  %t\n", p.ParseIncludes)
	_, _ = fmt.Fprintf(out, "Output:    %s\n", output)
	if p.Notes != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", p.Notes)
	}
	_, _ = fmt.Fprintf(out, "\n%s", preview)
	for _, inc := range p.Includes {
		_, _ = fmt.Fprintf(out, "+ %s\n", inc)
	}
	return nil
}

// planPreview renders the plan's files as a fully expanded, checked tree
func planPreview(p *plan.Plan) (string, error) {
	tree, err := filetree.New(filetree.Build(p.Files))
	if err != nil {
		return "", fmt.Errorf("failed to build preview: %w", err)
	}

	store := selection.NewStore()
	for _, f := range tree.Files() {
		store.ToggleFile(f)
	}

	view := treeview.New(tree, filter.New(), store)
	view.ExpandAll()
	return treeview.FormatRows(view.Rows()), nil
}
