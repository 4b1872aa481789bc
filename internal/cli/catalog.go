package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cqlb/internal/catalog"
)

// CatalogOptions holds flags for the catalog commands.
type CatalogOptions struct {
	*RootOptions
	Database string
	Pretty   bool
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect saved statements",
		Long: `List, show and delete statements saved by "cqlb render --catalog".

Example:
  cqlb catalog list --db ./statements.db
  cqlb catalog show --db ./statements.db orders_by_customer --pretty
  cqlb catalog delete --db ./statements.db orders_by_customer`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite catalog (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List saved statements",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	})

	show := &cobra.Command{
		Use:           "show <name>",
		Short:         "Print one saved statement",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], cmd)
		},
	}
	show.Flags().BoolVar(&opts.Pretty, "pretty", false, "print the pretty rendering")
	cmd.AddCommand(show)

	cmd.AddCommand(&cobra.Command{
		Use:           "delete <name>",
		Short:         "Remove a saved statement",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogDelete(opts, args[0], cmd)
		},
	})

	return cmd
}

// openCatalog opens the catalog named by --db with a logger on stderr.
func openCatalog(opts *CatalogOptions, cmd *cobra.Command, formatter *OutputFormatter) (*catalog.Catalog, error) {
	cat, err := catalog.Open(opts.Database, catalog.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr())))
	if err != nil {
		return nil, formatter.fail(ExitCommandError, ErrCodeCatalog, err.Error())
	}
	return cat, nil
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	cat, err := openCatalog(opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(commandContext(cmd))
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeCatalog, err.Error())
	}

	if formatter.IsJSON() {
		if entries == nil {
			entries = []catalog.Entry{}
		}
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No statements saved.")
		return nil
	}
	for _, e := range entries {
		marker := ""
		if !e.Checked {
			marker = " (unchecked)"
		}
		fmt.Fprintf(formatter.Writer, "%s  %s%s\n", e.ID[:12], e.Name, marker)
	}
	return nil
}

func runCatalogShow(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	cat, err := openCatalog(opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	entry, err := cat.Get(commandContext(cmd), name)
	if errors.Is(err, catalog.ErrNotFound) {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no statement named %q", name))
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeCatalog, err.Error())
	}

	if formatter.IsJSON() {
		return formatter.Success(entry)
	}

	formatter.VerboseLog("id=%s build_id=%s checked=%t", entry.ID, entry.BuildID, entry.Checked)
	if opts.Pretty {
		fmt.Fprintln(formatter.Writer, entry.PrettyQuery)
	} else {
		fmt.Fprintln(formatter.Writer, entry.Query)
	}
	return nil
}

func runCatalogDelete(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	cat, err := openCatalog(opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	err = cat.Delete(commandContext(cmd), name)
	if errors.Is(err, catalog.ErrNotFound) {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no statement named %q", name))
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeWriteFailed, err.Error())
	}

	if formatter.IsJSON() {
		return formatter.Success(map[string]string{"deleted": name})
	}
	fmt.Fprintf(formatter.Writer, "✓ Deleted %s\n", name)
	return nil
}
