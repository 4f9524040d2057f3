package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/listimport"
)

// NewImportCommand creates the rename-from-list command
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [flags] <list.xlsx|list.csv> <file-or-directory>...",
		Short: "Rename files from a spreadsheet or CSV column",
		Long: `Read new names from one column of an .xlsx sheet or a .csv file.

Row i below the header renames input i. Inputs past the end of the list,
and rows with a blank cell, keep their names. A new name without an
extension takes the extension of the file it renames.

Examples:
  batchkit import names.xlsx photos/
  batchkit import --sheet Renames --column "New name" names.xlsx photos/ --apply
  batchkit import names.csv a.jpg b.jpg c.jpg`,
		Args: cobra.MinimumNArgs(2),
		RunE: runImport,
	}

	cmd.Flags().String("sheet", "", "Worksheet to read (default: the active sheet)")
	cmd.Flags().String("column", "", "Header of the name column (default: the first column)")
	addInputFlags(cmd)
	addBatchFlags(cmd)

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	sheet, _ := cmd.Flags().GetString("sheet")
	column, _ := cmd.Flags().GetString("column")

	engine, err := listimport.NewEngine(args[0], listimport.Options{Sheet: sheet, Column: column})
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cmd, args[1:], env.log)
	if err != nil {
		return err
	}
	return runBatch(cmd, env, engine, inputs)
}
