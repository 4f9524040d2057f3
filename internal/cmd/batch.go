package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/controller"
	"github.com/harrison/batchkit/internal/display"
	"github.com/harrison/batchkit/internal/executor"
	"github.com/harrison/batchkit/internal/fileutil"
	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/plan"
	"github.com/harrison/batchkit/internal/report"
)

// stdinIsTerminal reports whether confirmation prompts can be answered.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// addBatchFlags registers the preview and apply flags shared by every
// rename engine command.
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Preview format: table, json, yaml, markdown, html")
	cmd.Flags().StringP("output", "o", "", "Write the preview to a file instead of stdout")
	cmd.Flags().String("on-conflict", "", "How to treat colliding names: skip or suffix")
	cmd.Flags().Bool("apply", false, "Write the reviewed batch to a manifest for the file executor")
	cmd.Flags().Bool("dry-run", false, "Run the apply path without writing a manifest")
	cmd.Flags().String("manifest-dir", "", "Directory for manifests (default: .batchkit/manifests)")
	cmd.Flags().Bool("force", false, "Overwrite an existing manifest")
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation before writing the manifest")
}

// runBatch previews engine over inputs and, when asked, hands the reviewed
// plan to the manifest writer.
func runBatch(cmd *cobra.Command, env *environment, engine controller.Engine, inputs *fileutil.ScanResult) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	apply, _ := cmd.Flags().GetBool("apply")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	review := plan.Options{
		Policy: env.cfg.Rename.ConflictPolicy,
		Dirs:   inputs.Dirs(),
		Exists: fileutil.Exists,
	}

	var exec controller.Executor
	switch {
	case dryRun:
		exec = executor.DryRun{}
	case apply:
		w := executor.NewManifestWriter(env.cfg.Output.ManifestDir, env.cfg.Output.ManifestFormat)
		w.Force, _ = cmd.Flags().GetBool("force")
		exec = w
	}

	ctrl := controller.New(engine, exec, controller.WithLogger(env.log), controller.WithReview(review))
	env.log.LogDebug(fmt.Sprintf("Engine: %s", ctrl.Describe()))

	names := inputs.Names()
	p, err := ctrl.Preview(ctx, names)
	if err != nil {
		return err
	}
	if err := writePreview(cmd, env, p); err != nil {
		return err
	}
	for _, w := range display.PlanWarnings(p) {
		w.Display(cmd.ErrOrStderr())
	}

	if exec == nil {
		return nil
	}

	out := cmd.OutOrStdout()
	if p.Summary.OK == 0 && p.Batch.InvalidCount() == 0 {
		fmt.Fprintln(out, "Nothing to rename; no manifest written.")
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !dryRun && !yes && stdinIsTerminal() {
		fmt.Fprintf(out, "Write manifest for %d rename(s)?\n", p.Summary.OK)
		if !confirmAction(cmd.InOrStdin(), out) {
			fmt.Fprintln(out, "Operation cancelled.")
			return nil
		}
	}

	result, err := ctrl.Process(ctx, names, p.Batch.At)
	if err != nil {
		return err
	}
	if result.Location != "" {
		fmt.Fprintf(out, "Manifest written to %s\n", result.Location)
	} else {
		fmt.Fprintf(out, "Dry run: %d rename(s), %d skipped\n", result.Renamed, result.Skipped)
	}
	return nil
}

// writePreview renders the plan in the configured format, to --output when
// given and to stdout otherwise.
func writePreview(cmd *cobra.Command, env *environment, p *models.Plan) error {
	target, _ := cmd.Flags().GetString("output")
	if target == "" {
		return report.Render(cmd.OutOrStdout(), p, env.cfg.Output.Format, report.Options{Color: !color.NoColor})
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	if err := report.Render(f, p, env.cfg.Output.Format, report.Options{}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write preview file: %w", err)
	}
	env.log.LogInfo(fmt.Sprintf("Preview written to %s", target))
	return nil
}

// confirmAction prompts the user for confirmation
func confirmAction(in io.Reader, out io.Writer) bool {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
