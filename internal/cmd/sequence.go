package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/batchkit/internal/config"
	"github.com/harrison/batchkit/internal/presets"
	"github.com/harrison/batchkit/internal/sequence"
)

// NewSequenceCommand creates the sequence rename command
func NewSequenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence [flags] <file-or-directory>...",
		Short: "Preview or apply sequence renames",
		Long: `Generate new names from a template, one per input in order.

Schemes:
  number  {n} is start + i*step, zero-padded to --digits
  date    {date} is the current date in --date-pattern, or --start-date
          advanced by --days-step days per input
  custom  {name} is the original stem, {n} the unpadded counter, {ext} the extension
  list    {s} cycles through --item values

Numeric flags are read leniently: "12px" is 12, and 0 or text without
digits falls back to the configured default.

Examples:
  batchkit sequence -t 'photo_{n}' --digits 3 --keep-ext photos/
  batchkit sequence --scheme date -t 'scan_{date}_{n}' --date-pattern yyyyMMdd scans/
  batchkit sequence --scheme date -t 'day_{date}' --start-date 2024-03-01 --days-step 1 diary/
  batchkit sequence --scheme custom -t '{name}-{n}{ext}' --start 10 --step 10 docs/
  batchkit sequence --scheme list -t 'team-{s}' --item red --item blue shirts/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSequence,
	}

	f := cmd.Flags()
	f.String("scheme", sequence.TypeNumber, "Scheme: number, date, custom, list")
	f.StringP("template", "t", "", "Name template")
	f.String("start", "", "First counter value (default from config)")
	f.String("step", "", "Counter increment (default from config)")
	f.String("digits", "", "Minimum counter width for the number scheme (default from config)")
	f.String("date-pattern", "", "Date pattern: "+strings.Join(sequence.DatePatterns, ", "))
	f.String("start-date", "", "First date for the date scheme, yyyy-MM-dd (default: today)")
	f.String("days-step", "", "Days added per input for the date scheme")
	f.StringArray("item", nil, "List item for the list scheme (repeatable)")
	f.Bool("keep-ext", false, "Append the original extension when the new name lacks it")
	f.String("preset", "", "Use the scheme of a saved preset")
	f.String("save-preset", "", "Save the scheme as a preset")
	addInputFlags(cmd)
	addBatchFlags(cmd)

	return cmd
}

func runSequence(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	presetName, _ := cmd.Flags().GetString("preset")
	saveName, _ := cmd.Flags().GetString("save-preset")

	var store *presets.Store
	if presetName != "" || saveName != "" {
		store, err = env.openPresets()
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var cfg sequence.Config
	if presetName != "" {
		p, err := store.Get(cmd.Context(), presetName)
		if err != nil {
			return err
		}
		if cfg, err = p.SequenceConfig(); err != nil {
			return err
		}
		if err := store.MarkUsed(cmd.Context(), presetName); err != nil {
			return err
		}
	} else {
		spec, err := sequenceSpecFromFlags(cmd, env.cfg.Sequence)
		if err != nil {
			return err
		}
		if cfg, err = spec.Config(); err != nil {
			return err
		}
	}

	if saveName != "" {
		p, err := presets.NewSequencePreset(saveName, cfg)
		if err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved preset %s\n", saveName)
	}

	inputs, err := collectInputs(cmd, args, env.log)
	if err != nil {
		return err
	}
	return runBatch(cmd, env, sequence.NewEngine(cfg), inputs)
}

// sequenceSpecFromFlags reads the scheme flags, taking unset values from the
// configured defaults.
func sequenceSpecFromFlags(cmd *cobra.Command, defaults config.SequenceConfig) (sequence.Spec, error) {
	flags := cmd.Flags()

	scheme, _ := flags.GetString("scheme")
	template, _ := flags.GetString("template")
	if template == "" {
		return sequence.Spec{}, errors.New("a --template is required")
	}

	start, _ := flags.GetString("start")
	step, _ := flags.GetString("step")
	digits, _ := flags.GetString("digits")
	items, _ := flags.GetStringArray("item")
	startDate, _ := flags.GetString("start-date")
	daysStep, _ := flags.GetString("days-step")

	datePattern, _ := flags.GetString("date-pattern")
	if datePattern == "" {
		datePattern = defaults.DatePattern
	}
	if scheme == sequence.TypeDate {
		if err := sequence.ValidateDatePattern(datePattern); err != nil {
			return sequence.Spec{}, err
		}
	}

	keepExt := defaults.KeepExtension
	if flags.Changed("keep-ext") {
		keepExt, _ = flags.GetBool("keep-ext")
	}

	spec := sequence.Spec{
		Type:          scheme,
		Template:      template,
		Start:         sequence.ParseInt(start, defaults.Start),
		Step:          sequence.ParseInt(step, defaults.Step),
		Digits:        sequence.ParseInt(digits, defaults.Digits),
		DatePattern:   datePattern,
		StartDate:     startDate,
		DaysStep:      sequence.ParseInt(daysStep, 0),
		Items:         items,
		KeepExtension: keepExt,
	}
	if _, err := spec.Config(); err != nil {
		return sequence.Spec{}, err
	}
	return spec, nil
}
