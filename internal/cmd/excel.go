package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/harrison/batchkit/internal/apiclient"
)

var excelExts = []string{".xlsx", ".xlsm"}

// NewExcelCommand creates the 'batchkit excel' command group
func NewExcelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excel",
		Short: "Process Excel workbooks through the document service",
		Long: `Upload .xlsx files to the document service for find/replace and
merging. The service address comes from api.base_url in the configuration
or --api-url.`,
	}

	cmd.PersistentFlags().String("api-url", "", "Document service base URL")

	cmd.AddCommand(newExcelFindReplaceCommand())
	cmd.AddCommand(newExcelMergeCommand())

	return cmd
}

func newExcelFindReplaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find-replace [flags] <file.xlsx>...",
		Short: "Find and replace cell text in Excel workbooks",
		Long: `Replace text in the string cells of one or more workbooks. Pairs are
given as repeated --find/--replace flags and applied in order.

--sheet-range limits the replacement to one sheet ("Data") or to a cell
range of it ("Data!A1:C10"). The sheet is checked in every input before
anything is uploaded.

Examples:
  batchkit excel find-replace --find 2023 --replace 2024 budget.xlsx
  batchkit excel find-replace --find N/A --replace '' --sheet-range 'Data!B2:B200' *.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExcelFindReplace,
	}
	cmd.Flags().StringArray("find", nil, "Text to find (repeatable)")
	cmd.Flags().StringArray("replace", nil, "Replacement for the matching --find (repeatable)")
	cmd.Flags().Bool("regex", false, "Treat --find values as regular expressions")
	cmd.Flags().String("sheet-range", "", "Sheet, or Sheet!A1:C10 cell range, to process (default: every sheet)")
	cmd.Flags().StringP("output", "o", "", "Output file (default: processed_<name> or processed_workbooks.zip)")
	return cmd
}

func runExcelFindReplace(cmd *cobra.Command, args []string) error {
	finds, _ := cmd.Flags().GetStringArray("find")
	replaces, _ := cmd.Flags().GetStringArray("replace")
	useRegex, _ := cmd.Flags().GetBool("regex")
	sheetRange, _ := cmd.Flags().GetString("sheet-range")
	output, _ := cmd.Flags().GetString("output")

	if len(finds) == 0 {
		return errors.New("at least one --find is required")
	}
	if len(finds) != len(replaces) {
		return fmt.Errorf("got %d --find and %d --replace values; they must pair up", len(finds), len(replaces))
	}
	if sheetRange != "" {
		for _, path := range args {
			if err := checkSheetRange(path, sheetRange); err != nil {
				return err
			}
		}
	}

	return withClient(cmd, true, func(ctx context.Context, env *environment, client *apiclient.Client) error {
		files, err := readDocuments(cmd, args, excelExts...)
		if err != nil {
			return err
		}

		var data []byte
		if len(files) == 1 && len(finds) == 1 {
			if output == "" {
				output = "processed_" + files[0].Name
			}
			data, err = client.ExcelFindReplace(ctx, files[0], apiclient.Replacement{FindText: finds[0], ReplaceText: replaces[0]}, sheetRange, useRegex)
		} else {
			if output == "" {
				output = "processed_workbooks.zip"
			}
			req := apiclient.FindReplaceRequest{UseRegex: useRegex, SheetRange: sheetRange}
			for i := range finds {
				req.Replacements = append(req.Replacements, apiclient.Replacement{FindText: finds[i], ReplaceText: replaces[i]})
			}
			data, err = client.ExcelBatchFindReplace(ctx, files, req)
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd, env, output, data)
	})
}

func newExcelMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [flags] <file.xlsx>...",
		Short: "Merge Excel workbooks",
		Long: `Combine workbooks into one. --type rows stacks every sheet vertically,
columns places them side by side, sheets copies each sheet into its own
sheet of the result.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			mergeType, _ := cmd.Flags().GetString("type")
			dedupe, _ := cmd.Flags().GetBool("remove-duplicates")

			return withClient(cmd, true, func(ctx context.Context, env *environment, client *apiclient.Client) error {
				files, err := readDocuments(cmd, args, excelExts...)
				if err != nil {
					return err
				}
				data, err := client.ExcelMerge(ctx, files, apiclient.MergeType(mergeType), dedupe)
				if err != nil {
					return err
				}
				return writeOutput(cmd, env, output, data)
			})
		},
	}
	cmd.Flags().String("type", string(apiclient.MergeRows), "Merge layout: rows, columns, sheets")
	cmd.Flags().Bool("remove-duplicates", false, "Drop duplicate rows from the result")
	cmd.Flags().StringP("output", "o", "merged.xlsx", "Output file")
	return cmd
}

// checkSheetRange verifies that the workbook at path has the sheet named by
// sheetRange and that its cell range, if any, is well formed.
func checkSheetRange(path, sheetRange string) error {
	sheet, cells := apiclient.SplitSheetRange(sheetRange)
	if sheet == "" {
		return fmt.Errorf("sheet range %q must name a sheet, e.g. Sheet1!A1:C10", sheetRange)
	}
	if cells != "" {
		from, to, _ := strings.Cut(cells, ":")
		for _, ref := range []string{from, to} {
			if ref == "" {
				continue
			}
			if _, _, err := excelize.CellNameToCoordinates(ref); err != nil {
				return fmt.Errorf("invalid cell range %q: %w", cells, err)
			}
		}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return fmt.Errorf("%s has no sheet %q", filepath.Base(path), sheet)
	}
	return nil
}
