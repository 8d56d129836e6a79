package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plateforge/plateforge/pkg/library"
	"github.com/plateforge/plateforge/pkg/plan"
	"github.com/plateforge/plateforge/pkg/platefile"
)

// libraryCommand creates the library command group for named designs.
func (c *CLI) libraryCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Store and retrieve named plate designs",
		Long: `Store and retrieve named plate designs.

Designs are kept in a JSON file store under the user config directory by
default. Pass --mongo-uri (or set ` + envMongoURI + `) to use a shared
MongoDB library instead.`,
	}
	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (overrides "+envMongoURI+")")

	cmd.AddCommand(c.librarySaveCommand(&mongoURI))
	cmd.AddCommand(c.libraryListCommand(&mongoURI))
	cmd.AddCommand(c.libraryShowCommand(&mongoURI))
	cmd.AddCommand(c.libraryDeleteCommand(&mongoURI))

	return cmd
}

// newLibraryStore selects the design store backend. An explicit Mongo
// URI (flag or environment) wins over the file store in the user config
// directory.
func newLibraryStore(ctx context.Context, mongoURI string) (library.Store, error) {
	if mongoURI == "" {
		mongoURI = os.Getenv(envMongoURI)
	}
	if mongoURI != "" {
		return library.NewMongoStore(ctx, mongoURI)
	}
	return library.NewFileStore("")
}

// librarySaveCommand creates the "library save" subcommand.
func (c *CLI) librarySaveCommand(mongoURI *string) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "save [plate.toml]",
		Short: "Save a plate design under a name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runLibrarySave(cmd.Context(), input, name, description, *mongoURI)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "design name (default: document name or file name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "free-form description")

	return cmd
}

// runLibrarySave resolves the plate file, builds its plan summary, and
// stores both under the chosen name.
func (c *CLI) runLibrarySave(ctx context.Context, input, name, description, mongoURI string) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	p, configs, err := doc.Resolve()
	if err != nil {
		return err
	}

	if name == "" {
		name = doc.Name
	}
	if name == "" && input != "" {
		name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	if name == "" {
		name = "default"
	}
	doc.Name = name

	// Build the plan once so the stored entry carries its summary.
	pl, err := plan.Build(p, configs, 0)
	if err != nil {
		return err
	}
	summary := pl.Summarize()

	store, err := newLibraryStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("open design library: %w", err)
	}
	defer store.Close()

	entry := &library.Entry{
		Name:        name,
		Description: description,
		Document:    *doc,
		Plan:        &summary,
	}
	if err := store.Save(ctx, entry); err != nil {
		return err
	}

	printSuccess("Saved design %q", name)
	printDetail("id: %s", entry.ID)
	printDetail("%d elements across %d sections", summary.TotalElements, len(summary.Sections))
	printNewline()
	printNextStep("Show it", "plateforge library show "+name)
	return nil
}

// libraryListCommand creates the "library list" subcommand.
func (c *CLI) libraryListCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored designs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLibraryList(cmd.Context(), *mongoURI)
		},
	}
}

func (c *CLI) runLibraryList(ctx context.Context, mongoURI string) error {
	store, err := newLibraryStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("open design library: %w", err)
	}
	defer store.Close()

	entries, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printInfo("Library is empty")
		printNextStep("Save a design", "plateforge library save plate.toml --name my-plate")
		return nil
	}

	rows := [][]string{}
	for i, e := range entries {
		plateStr, elements := "", ""
		if e.Plan != nil {
			plateStr = e.Plan.Plate.String()
			elements = strconv.Itoa(e.Plan.TotalElements)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Name,
			plateStr,
			elements,
			formatRelativeTime(e.UpdatedAt),
			e.Description,
		})
	}
	fmt.Println(renderTable([]string{"#", "Name", "Plate", "Elements", "Updated", "Description"}, rows))
	return nil
}

// libraryShowCommand creates the "library show" subcommand.
func (c *CLI) libraryShowCommand(mongoURI *string) *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a stored design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLibraryShow(cmd.Context(), args[0], asTOML, *mongoURI)
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print the plate file instead of the summary")

	return cmd
}

func (c *CLI) runLibraryShow(ctx context.Context, name string, asTOML bool, mongoURI string) error {
	store, err := newLibraryStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("open design library: %w", err)
	}
	defer store.Close()

	entry, err := store.Get(ctx, name)
	if err != nil {
		return err
	}

	// Raw plate file to stdout so it can be piped into a .toml.
	if asTOML {
		return platefile.Write(&entry.Document, os.Stdout)
	}

	printKeyValue("Name", entry.Name)
	printKeyValue("ID", entry.ID)
	if entry.Description != "" {
		printKeyValue("Description", entry.Description)
	}
	if entry.Plan != nil {
		printKeyValue("Plate", entry.Plan.Plate.String())
	}
	printKeyValue("Created", entry.CreatedAt.Format("Jan 2, 2006 15:04"))
	printKeyValue("Updated", formatRelativeTime(entry.UpdatedAt))

	if entry.Plan != nil {
		printNewline()
		fmt.Println(summaryTable(*entry.Plan))
		for _, w := range entry.Plan.Warnings {
			printWarning("%s", w)
		}
	}

	printNewline()
	printNextStep("Export the plate file", fmt.Sprintf("plateforge library show %s --toml > %s.toml", name, name))
	return nil
}

// libraryDeleteCommand creates the "library delete" subcommand.
func (c *CLI) libraryDeleteCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLibraryDelete(cmd.Context(), args[0], *mongoURI)
		},
	}
}

func (c *CLI) runLibraryDelete(ctx context.Context, name, mongoURI string) error {
	store, err := newLibraryStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("open design library: %w", err)
	}
	defer store.Close()

	if err := store.Delete(ctx, name); err != nil {
		return err
	}
	printSuccess("Deleted design %q", name)
	return nil
}
