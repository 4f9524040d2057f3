package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/config"
	"github.com/harrison/batchkit/internal/controller"
	"github.com/harrison/batchkit/internal/fileutil"
	"github.com/harrison/batchkit/internal/logger"
)

// addInputFlags registers the flags that filter directory arguments.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("ext", nil, "Only take files with these extensions from directories (e.g. jpg,png)")
	cmd.Flags().String("match", "", "Only take files whose names match this glob from directories")
	cmd.Flags().BoolP("recursive", "r", false, "Scan directories recursively")
	cmd.Flags().Bool("hidden", false, "Include hidden files")
}

// collectInputs expands the file and directory arguments into the ordered
// input list. Scan problems that do not stop the scan are logged.
func collectInputs(cmd *cobra.Command, args []string, log logger.BatchLogger) (*fileutil.ScanResult, error) {
	exts, _ := cmd.Flags().GetStringSlice("ext")
	match, _ := cmd.Flags().GetString("match")
	recursive, _ := cmd.Flags().GetBool("recursive")
	hidden, _ := cmd.Flags().GetBool("hidden")

	result, err := fileutil.Collect(args, fileutil.ScanOptions{
		Match:         match,
		Extensions:    exts,
		Recursive:     recursive,
		ExcludeDirs:   []string{config.HomeDirName},
		IncludeHidden: hidden,
	})
	if err != nil {
		return nil, err
	}
	for _, scanErr := range result.Errors {
		log.LogWarn(scanErr.Error())
	}
	if len(result.Files) == 0 {
		return nil, controller.ErrNoFiles
	}
	log.LogDebug(fmt.Sprintf("Collected %d file(s)", len(result.Files)))
	return result, nil
}
