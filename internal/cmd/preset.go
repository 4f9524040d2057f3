package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/presets"
	"github.com/harrison/batchkit/internal/report"
)

// NewPresetCommand creates the 'batchkit preset' command group
func NewPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved rename configurations",
		Long: `Presets are named rename rule chains or sequence schemes kept in
.batchkit/presets.db. Use them with 'rename --preset' or 'sequence --preset';
create them with --save-preset or from a YAML document.`,
	}

	cmd.AddCommand(newPresetListCommand())
	cmd.AddCommand(newPresetShowCommand())
	cmd.AddCommand(newPresetSaveCommand())
	cmd.AddCommand(newPresetDeleteCommand())

	return cmd
}

func newPresetListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			return withPresets(cmd, func(store *presets.Store) error {
				list, err := store.List(cmd.Context(), kind)
				if err != nil {
					return err
				}
				return writePresetTable(cmd.OutOrStdout(), list)
			})
		},
	}
	cmd.Flags().String("kind", "", "Only list presets of this kind: "+models.KindPattern+" or "+models.KindSequence)
	return cmd
}

func newPresetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a preset's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresets(cmd, func(store *presets.Store) error {
				p, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				doc, err := p.YAML()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "# %s (%s): %s\n", p.Name, p.Kind, p.Description)
				fmt.Fprintf(out, "# used %d time(s)\n", p.UseCount)
				fmt.Fprint(out, doc)
				return nil
			})
		},
	}
}

func newPresetSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name> <file.yaml|->",
		Short: "Save a preset from a YAML document",
		Long: `Save a preset from a YAML document in the form 'preset show' prints.
An existing preset with the same name is replaced; its usage count is kept.

Example document:
  rename:
    - type: replace
      from: " "
      to: "_"
    - type: add-prefix
      prefix: "2024_"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[1] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[1])
			}
			if err != nil {
				return fmt.Errorf("read preset document: %w", err)
			}

			p, err := presets.ParseYAML(args[0], data)
			if err != nil {
				return err
			}
			return withPresets(cmd, func(store *presets.Store) error {
				if err := store.Save(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %s (%s): %s\n", p.Name, p.Kind, p.Description)
				return nil
			})
		},
	}
	return cmd
}

func newPresetDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				fmt.Fprintf(out, "This will delete preset: %s\n", args[0])
				if !confirmAction(cmd.InOrStdin(), out) {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
			}
			return withPresets(cmd, func(store *presets.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted preset %s.\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// withPresets runs fn against the configured presets store.
func withPresets(cmd *cobra.Command, fn func(store *presets.Store) error) error {
	env, err := loadEnvironment(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	store, err := env.openPresets()
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

func writePresetTable(w io.Writer, list []*presets.Preset) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No presets saved.")
		return err
	}

	t := &report.Table{Headers: []string{"NAME", "KIND", "USED", "LAST USED", "DESCRIPTION"}}
	for _, p := range list {
		lastUsed := "-"
		if !p.LastUsed.IsZero() {
			lastUsed = p.LastUsed.Local().Format("2006-01-02 15:04")
		}
		t.Rows = append(t.Rows, []string{p.Name, p.Kind, strconv.Itoa(p.UseCount), lastUsed, p.Description})
	}
	return t.Write(w)
}
