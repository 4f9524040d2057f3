package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/naming"
	"github.com/harrison/batchkit/internal/report"
)

// NewSizeCommand creates the size listing command
func NewSizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size [flags] <file-or-directory>...",
		Short: "List input files with human readable sizes",
		Long: `List the files a batch would operate on, in batch order, with their
sizes. Directory arguments are filtered the same way as for rename.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSize,
	}
	addInputFlags(cmd)
	return cmd
}

func runSize(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	inputs, err := collectInputs(cmd, args, env.log)
	if err != nil {
		return err
	}

	t := &report.Table{Headers: []string{"#", "NAME", "SIZE"}}
	var total int64
	for i, f := range inputs.Files {
		t.Rows = append(t.Rows, []string{fmt.Sprint(i + 1), f.Name, naming.FormatByteSize(f.Size)})
		total += f.Size
	}

	out := cmd.OutOrStdout()
	if err := t.Write(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d file(s), %s\n", len(inputs.Files), naming.FormatByteSize(total))
	return nil
}
