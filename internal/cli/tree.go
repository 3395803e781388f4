package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/treeview"
)

// TreeCommand handles the tree command
type TreeCommand struct {
	*env

	filter    string
	format    string
	collapsed bool
}

// TreeOutput is the JSON form of the tree command
type TreeOutput struct {
	Project   string   `json:"project"`
	Filter    string   `json:"filter,omitempty"`
	FileCount int      `json:"fileCount"`
	Files     []string `json:"files"`
}

// NewTreeCommand creates a new tree command
func NewTreeCommand(e *env) *cobra.Command {
	cmd := &TreeCommand{env: e}

	cobraCmd := &cobra.Command{
		Use:   "tree PROJECT",
		Short: "Print the scanned file tree of a project",
		Long: `Scans a project through the analyzer and prints its PHP file tree.

With --filter only files whose path contains the term are shown, together
with the directories leading to them.`,
		Example: `  # Show the whole tree
  depextract tree /srv/app

  # Show files matching "model"
  depextract tree /srv/app --filter model

  # Output JSON for scripting
  depextract tree /srv/app --filter model --format json`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.filter, "filter", "", "Only show files whose path contains this term")
	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text or json")
	cobraCmd.Flags().BoolVar(&cmd.collapsed, "collapsed", false, "Only show top-level entries when no filter is given")

	return cobraCmd
}

// Run executes the tree command
func (c *TreeCommand) Run(cmd *cobra.Command, args []string) error {
	if c.format != "text" && c.format != "json" {
		return fmt.Errorf("invalid format: %s (must be text or json)", c.format)
	}

	rt, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	s := rt.newSession()
	if err := s.Scan(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to scan project: %w", err)
	}
	s.SetFilterTerm(c.filter)

	view := s.View()
	if !c.collapsed && !s.Filter().HasTerm() {
		view.ExpandAll()
	}

	if c.format == "json" {
		return c.outputJSON(cmd, args[0], view)
	}
	return c.outputText(cmd, s.Tree(), view)
}

func (c *TreeCommand) outputText(cmd *cobra.Command, tree *filetree.Model, view *treeview.Renderer) error {
	out := cmd.OutOrStdout()

	switch {
	case tree.FileCount() == 0:
		_, _ = fmt.Fprintln(out, "No PHP files found")
		return nil
	case view.Len() == 0:
		_, _ = fmt.Fprintf(out, "No files match %q\n", c.filter)
		return nil
	}

	rows := view.Rows()
	_, _ = fmt.Fprint(out, treeview.FormatRows(rows))
	_, _ = fmt.Fprintf(out, "\n%d of %d files shown\n", len(filePaths(rows)), tree.FileCount())
	return nil
}

func (c *TreeCommand) outputJSON(cmd *cobra.Command, project string, view *treeview.Renderer) error {
	files := filePaths(view.Rows())
	output := TreeOutput{
		Project:   project,
		Filter:    c.filter,
		FileCount: len(files),
		Files:     files,
	}

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

// filePaths returns the paths of the file rows
func filePaths(rows []treeview.Row) []string {
	files := make([]string, 0, len(rows))
	for _, row := range rows {
		if !row.IsDir() {
			files = append(files, row.Path())
		}
	}
	return files
}
