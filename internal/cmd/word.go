package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/apiclient"
	"github.com/harrison/batchkit/internal/display"
	"github.com/harrison/batchkit/internal/filelock"
	"github.com/harrison/batchkit/internal/report"
)

const wordExt = ".docx"

// NewWordCommand creates the 'batchkit word' command group
func NewWordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Process Word documents through the document service",
		Long: `Upload .docx files to the document service for find/replace, merging
and content extraction. The service address comes from api.base_url in
the configuration or --api-url.`,
	}

	cmd.PersistentFlags().String("api-url", "", "Document service base URL")

	cmd.AddCommand(newWordStatusCommand())
	cmd.AddCommand(newWordFindReplaceCommand())
	cmd.AddCommand(newWordMergeCommand())
	cmd.AddCommand(newWordExtractCommand())

	return cmd
}

func newWordStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the document service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, false, func(ctx context.Context, env *environment, client *apiclient.Client) error {
				msg, err := client.Status(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", client.BaseURL, msg)
				return nil
			})
		},
	}
}

func newWordFindReplaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find-replace [flags] <file.docx>...",
		Short: "Find and replace text in Word documents",
		Long: `Replace text in one or more .docx files. Pairs are given as repeated
--find/--replace flags and applied in order.

A single document with a single pair is returned as a document; anything
else comes back as a zip archive of the processed documents.

Examples:
  batchkit word find-replace --find ACME --replace Initech contract.docx
  batchkit word find-replace --find '\d{4}' --replace YEAR --regex -o out.zip *.docx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFindReplace,
	}
	cmd.Flags().StringArray("find", nil, "Text to find (repeatable)")
	cmd.Flags().StringArray("replace", nil, "Replacement for the matching --find (repeatable)")
	cmd.Flags().Bool("regex", false, "Treat --find values as regular expressions")
	cmd.Flags().StringP("output", "o", "", "Output file (default: processed_<name> or processed_documents.zip)")
	return cmd
}

func runFindReplace(cmd *cobra.Command, args []string) error {
	finds, _ := cmd.Flags().GetStringArray("find")
	replaces, _ := cmd.Flags().GetStringArray("replace")
	useRegex, _ := cmd.Flags().GetBool("regex")
	output, _ := cmd.Flags().GetString("output")

	if len(finds) == 0 {
		return errors.New("at least one --find is required")
	}
	if len(finds) != len(replaces) {
		return fmt.Errorf("got %d --find and %d --replace values; they must pair up", len(finds), len(replaces))
	}

	return withClient(cmd, true, func(ctx context.Context, env *environment, client *apiclient.Client) error {
		files, err := readDocuments(cmd, args, wordExt)
		if err != nil {
			return err
		}

		var data []byte
		if len(files) == 1 && len(finds) == 1 {
			if output == "" {
				output = "processed_" + files[0].Name
			}
			data, err = client.FindReplace(ctx, files[0], apiclient.Replacement{FindText: finds[0], ReplaceText: replaces[0]}, useRegex)
		} else {
			if output == "" {
				output = "processed_documents.zip"
			}
			req := apiclient.FindReplaceRequest{UseRegex: useRegex}
			for i := range finds {
				req.Replacements = append(req.Replacements, apiclient.Replacement{FindText: finds[i], ReplaceText: replaces[i]})
			}
			data, err = client.BatchFindReplace(ctx, files, req)
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd, env, output, data)
	})
}

func newWordMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [flags] <file.docx>...",
		Short: "Merge Word documents in order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return withClient(cmd, true, func(ctx context.Context, env *environment, client *apiclient.Client) error {
				files, err := readDocuments(cmd, args, wordExt)
				if err != nil {
					return err
				}
				data, err := client.Merge(ctx, files)
				if err != nil {
					return err
				}
				return writeOutput(cmd, env, output, data)
			})
		},
	}
	cmd.Flags().StringP("output", "o", "merged_document.docx", "Output file")
	return cmd
}

func newWordExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [flags] <file.docx>...",
		Short: "Extract paragraphs or tables from Word documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().String("type", string(apiclient.ExtractText), "What to extract: text or table")
	cmd.Flags().Bool("json", false, "Print the raw extracted content as JSON")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("type")
	asJSON, _ := cmd.Flags().GetBool("json")

	return withClient(cmd, false, func(ctx context.Context, env *environment, client *apiclient.Client) error {
		files, err := readDocuments(cmd, args, wordExt)
		if err != nil {
			return err
		}
		res, err := client.Extract(ctx, files, apiclient.ExtractType(kind))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			var v any
			if err := json.Unmarshal(res.Content, &v); err != nil {
				return fmt.Errorf("decode extracted content: %w", err)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}

		if apiclient.ExtractType(kind) == apiclient.ExtractTable {
			tables, err := res.Tables()
			if err != nil {
				return err
			}
			for i, rows := range tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "Table %d\n", i+1)
				if len(rows) == 0 {
					continue
				}
				t := &report.Table{Headers: rows[0], Rows: rows[1:]}
				if err := t.Write(out); err != nil {
					return err
				}
			}
			return nil
		}

		paragraphs, err := res.Paragraphs()
		if err != nil {
			return err
		}
		for _, p := range paragraphs {
			fmt.Fprintln(out, p)
		}
		return nil
	})
}

// withClient loads the environment, builds a document service client from
// it and runs fn under a context cancelled on interrupt.
func withClient(cmd *cobra.Command, runLog bool, fn func(ctx context.Context, env *environment, client *apiclient.Client) error) error {
	env, err := loadEnvironment(cmd, runLog)
	if err != nil {
		return err
	}
	defer env.Close()

	client := apiclient.NewClient(env.cfg.API.BaseURL, env.cfg.API.Timeout)
	client.Retries = env.cfg.API.Retries

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fn(ctx, env, client); err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.RequestID != "" {
			env.log.LogError(fmt.Sprintf("document service request %s failed", apiErr.RequestID))
		}
		return err
	}
	return nil
}

// readDocuments loads the arguments for upload, reporting progress. Every
// path must carry one of exts.
func readDocuments(cmd *cobra.Command, paths []string, exts ...string) ([]apiclient.File, error) {
	progress := display.NewProgressIndicator(cmd.ErrOrStderr(), "Uploading documents", len(paths))
	if len(paths) == 1 {
		display.DisplaySingleFile(cmd.ErrOrStderr(), "Uploading", paths[0])
	} else {
		progress.Start()
	}

	files := make([]apiclient.File, 0, len(paths))
	for _, p := range paths {
		if !hasExtension(p, exts) {
			return nil, fmt.Errorf("%s is not a %s file", filepath.Base(p), strings.Join(exts, " or "))
		}
		f, err := apiclient.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
		if len(paths) > 1 {
			progress.Step(p)
		}
	}
	if len(paths) > 1 {
		progress.Complete(fmt.Sprintf("Read %d documents", len(files)))
	}
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// writeOutput stores a service response atomically.
func writeOutput(cmd *cobra.Command, env *environment, path string, data []byte) error {
	if err := filelock.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	env.log.LogInfo(fmt.Sprintf("Wrote %s (%d bytes)", path, len(data)))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}
