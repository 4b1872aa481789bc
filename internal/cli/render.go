package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cqlb/internal/catalog"
	"github.com/roach88/cqlb/internal/querydef"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Pretty  bool
	Name    string // render only this definition
	Catalog string // save rendered statements to this SQLite database

	// IDGenerator overrides the catalog build ID generator (for testing).
	// If nil, the catalog default (UUIDv7) is used.
	IDGenerator catalog.IDGenerator
}

// RenderedQuery is one rendered definition.
type RenderedQuery struct {
	Name     string   `json:"name"`
	ID       string   `json:"id"`
	BuildID  string   `json:"build_id,omitempty"`
	Query    string   `json:"query"`
	Checked  bool     `json:"checked"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render query definitions to CQL",
		Long: `Compile query definitions and print the CQL text of each.

<path> is a YAML file, a CUE file (its package directory is loaded) or a
directory searched recursively for both.

Example:
  cqlb render ./queries
  cqlb render ./queries/orders.yaml --name orders_by_customer --pretty
  cqlb render ./queries --catalog ./statements.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(commandContext(cmd), opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "one clause per line")
	cmd.Flags().StringVar(&opts.Name, "name", "", "render only the named definition")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "save statements to a SQLite catalog")

	return cmd
}

func runRender(ctx context.Context, opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	defs, errs := LoadDefinitions(path, querydef.LoadModeFailFast)
	if len(errs) > 0 {
		le := firstLoadError(errs)
		return formatter.fail(ExitCommandError, le.Code, le.Error())
	}
	formatter.VerboseLog("Loaded %d definition(s) from %s", len(defs), path)

	if opts.Name != "" {
		defs = filterDefinitions(defs, opts.Name)
		if len(defs) == 0 {
			return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no definition named %q", opts.Name))
		}
	}

	compiled := CompileAll(defs)
	for _, c := range compiled {
		if c.Err != nil {
			return formatter.fail(ExitFailure, c.Err.Code, fmt.Sprintf("%s: %s", c.Definition.Name, c.Err.Error()))
		}
	}

	var cat *catalog.Catalog
	if opts.Catalog != "" {
		catOpts := []catalog.Option{catalog.WithLogger(logger)}
		if opts.IDGenerator != nil {
			catOpts = append(catOpts, catalog.WithIDGenerator(opts.IDGenerator))
		}
		var err error
		cat, err = catalog.Open(opts.Catalog, catOpts...)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeCatalog, err.Error())
		}
		defer cat.Close()
	}

	rendered := make([]RenderedQuery, 0, len(compiled))
	for _, c := range compiled {
		entry := catalog.NewEntry(c.Definition.Name, c.Statement)
		if cat != nil {
			saved, err := cat.Save(ctx, entry)
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeWriteFailed, err.Error())
			}
			entry = saved
		}

		query := entry.Query
		if opts.Pretty {
			query = entry.PrettyQuery
		}
		rendered = append(rendered, RenderedQuery{
			Name:     entry.Name,
			ID:       entry.ID,
			BuildID:  entry.BuildID,
			Query:    query,
			Checked:  entry.Checked,
			Warnings: c.Statement.Validate().Warnings,
		})
	}

	if formatter.IsJSON() {
		return formatter.Success(rendered)
	}

	w := formatter.Writer
	for i, r := range rendered {
		if len(rendered) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "-- %s\n", r.Name)
		}
		fmt.Fprintln(w, r.Query)
	}
	return nil
}

func filterDefinitions(defs []querydef.Definition, name string) []querydef.Definition {
	for _, d := range defs {
		if d.Name == name {
			return []querydef.Definition{d}
		}
	}
	return nil
}
