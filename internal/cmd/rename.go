package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/presets"
	"github.com/harrison/batchkit/internal/rename"
)

// NewRenameCommand creates the pattern rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename [flags] <file-or-directory>...",
		Short: "Preview or apply pattern renames",
		Long: `Apply pattern rules to every file name of a batch and preview the result.

Rules given on the command line run in this order: replace, remove,
regex substitution, prefix, suffix. A preset's rules run before them.
Replace and remove take literal text unless --regex is set. Replacements
may reference groups ($1, $&, $<name>).

Examples:
  # Preview a prefix
  batchkit rename --prefix 2024_ photos/

  # Replace spaces with underscores in every .docx, then apply
  batchkit rename --replace " " --with _ --ext docx reports/ --apply

  # Regex substitution with groups
  batchkit rename --pattern '^IMG_(\d+)' --substitute 'photo-$1' photos/

  # Reuse and save rule sets
  batchkit rename --prefix draft_ --save-preset drafts photos/
  batchkit rename --preset drafts other/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRename,
	}

	f := cmd.Flags()
	f.String("prefix", "", "Add a prefix")
	f.String("suffix", "", "Add a suffix")
	f.Bool("before-ext", false, "Insert the suffix before the extension")
	f.String("replace", "", "Text to replace (use with --with)")
	f.String("with", "", "Replacement for --replace")
	f.String("remove", "", "Text to remove")
	f.Bool("regex", false, "Treat --replace and --remove as regular expressions")
	f.String("pattern", "", "Regular expression to substitute (use with --substitute)")
	f.String("substitute", "", "Replacement for --pattern")
	f.String("preset", "", "Run the rules of a saved preset first")
	f.String("save-preset", "", "Save the resulting rule chain as a preset")
	addInputFlags(cmd)
	addBatchFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	ops := operationsFromFlags(cmd, env.cfg.Rename.UseRegex)

	presetName, _ := cmd.Flags().GetString("preset")
	saveName, _ := cmd.Flags().GetString("save-preset")
	if presetName != "" || saveName != "" {
		store, err := env.openPresets()
		if err != nil {
			return err
		}
		defer store.Close()

		ops, err = applyRenamePresets(cmd.Context(), store, presetName, saveName, ops)
		if err != nil {
			return err
		}
		if saveName != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved preset %s\n", saveName)
		}
	}
	if len(ops) == 0 {
		return errors.New("no rename rule given: use --prefix, --suffix, --replace, --remove, --pattern or --preset")
	}

	inputs, err := collectInputs(cmd, args, env.log)
	if err != nil {
		return err
	}
	return runBatch(cmd, env, rename.NewEngine(ops...), inputs)
}

// operationsFromFlags builds the rules set on the command line, in their
// fixed order.
func operationsFromFlags(cmd *cobra.Command, useRegex bool) []rename.Operation {
	flags := cmd.Flags()
	var ops []rename.Operation

	if flags.Changed("replace") {
		from, _ := flags.GetString("replace")
		to, _ := flags.GetString("with")
		ops = append(ops, rename.Replace{From: from, To: to, UseRegex: useRegex})
	}
	if flags.Changed("remove") {
		text, _ := flags.GetString("remove")
		ops = append(ops, rename.Remove{Text: text, UseRegex: useRegex})
	}
	if flags.Changed("pattern") {
		pattern, _ := flags.GetString("pattern")
		repl, _ := flags.GetString("substitute")
		ops = append(ops, rename.RegexSubstitute{Pattern: pattern, Replacement: repl})
	}
	if flags.Changed("prefix") {
		prefix, _ := flags.GetString("prefix")
		ops = append(ops, rename.AddPrefix{Prefix: prefix})
	}
	if flags.Changed("suffix") {
		suffix, _ := flags.GetString("suffix")
		before, _ := flags.GetBool("before-ext")
		ops = append(ops, rename.AddSuffix{Suffix: suffix, BeforeExtension: before})
	}
	return ops
}

// applyRenamePresets prepends the rules of the named preset and saves the
// result under saveName when set.
func applyRenamePresets(ctx context.Context, store *presets.Store, presetName, saveName string, ops []rename.Operation) ([]rename.Operation, error) {
	if presetName != "" {
		p, err := store.Get(ctx, presetName)
		if err != nil {
			return nil, err
		}
		stored, err := p.Operations()
		if err != nil {
			return nil, err
		}
		ops = append(stored, ops...)
		if err := store.MarkUsed(ctx, presetName); err != nil {
			return nil, err
		}
	}

	if saveName != "" {
		if len(ops) == 0 {
			return nil, fmt.Errorf("preset %s: nothing to save", saveName)
		}
		p, err := presets.NewRenamePreset(saveName, ops...)
		if err != nil {
			return nil, err
		}
		if err := store.Save(ctx, p); err != nil {
			return nil, err
		}
	}
	return ops, nil
}
