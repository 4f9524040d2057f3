package apiclient

import (
	"context"
	"fmt"
	"strings"
)

// MergeType selects how ExcelMerge combines workbooks.
type MergeType string

// Excel merge layouts
const (
	MergeRows    MergeType = "rows"    // Stack every sheet vertically
	MergeColumns MergeType = "columns" // Place every sheet side by side
	MergeSheets  MergeType = "sheets"  // Copy each sheet into its own sheet
)

// MergeTypes lists the accepted merge layouts.
var MergeTypes = []MergeType{MergeRows, MergeColumns, MergeSheets}

// SplitSheetRange splits "Sheet1!A1:C10" into the sheet name and the cell
// range. A range without "!" names a whole sheet.
func SplitSheetRange(r string) (sheet, cells string) {
	sheet, cells, _ = strings.Cut(r, "!")
	return sheet, cells
}

// ExcelFindReplace runs one find/replace over a workbook and returns the
// modified workbook. sheetRange limits the replacement to one sheet, or to a
// cell range of it; empty means every sheet.
func (c *Client) ExcelFindReplace(ctx context.Context, file File, r Replacement, sheetRange string, useRegex bool) ([]byte, error) {
	fields := map[string]string{
		"find_text":    r.FindText,
		"replace_text": r.ReplaceText,
		"use_regex":    fmt.Sprint(useRegex),
	}
	if sheetRange != "" {
		fields["sheet_range"] = sheetRange
	}
	return c.upload(ctx, "/api/excel/find-replace", "file", []File{file}, fields)
}

// ExcelBatchFindReplace applies req to every workbook and returns a zip
// archive of the results.
func (c *Client) ExcelBatchFindReplace(ctx context.Context, files []File, req FindReplaceRequest) ([]byte, error) {
	return c.batchFindReplace(ctx, "/api/excel/batch-find-replace", files, req)
}

// ExcelMerge combines workbooks into one, optionally dropping duplicate rows.
func (c *Client) ExcelMerge(ctx context.Context, files []File, mergeType MergeType, removeDuplicates bool) ([]byte, error) {
	if !validMergeType(mergeType) {
		return nil, fmt.Errorf("unknown merge type %q, must be one of: %v", mergeType, MergeTypes)
	}
	return c.upload(ctx, "/api/excel/merge", "files", files, map[string]string{
		"merge_type":        string(mergeType),
		"remove_duplicates": fmt.Sprint(removeDuplicates),
	})
}

func validMergeType(t MergeType) bool {
	for _, m := range MergeTypes {
		if t == m {
			return true
		}
	}
	return false
}
