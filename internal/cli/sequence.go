package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/timer"
)

// AddSequenceCommand adds the sequence command and its subcommands.
func AddSequenceCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Manage the tabata sequence",
		Long: `A sequence chains named tabata configurations that play back to back
when sequence mode is enabled. Positions are 1-based.

Examples:
  judotimer sequence add "Uchi-komi" --work 30 --rest 10 --cycles 6
  judotimer sequence add --work 60 --rest 0 --cycles 1
  judotimer sequence list
  judotimer sequence replace 2 "Randori" --work 240 --cycles 1
  judotimer sequence remove 1
  judotimer sequence enable`,
	}

	addSequenceListCmd(cmd)
	addSequenceAddCmd(cmd)
	addSequenceRemoveCmd(cmd)
	addSequenceReplaceCmd(cmd)
	addSequenceClearCmd(cmd)
	addSequenceToggleCmd(cmd, "enable", "Play the sequence instead of a single tabata", true)
	addSequenceToggleCmd(cmd, "disable", "Play the single tabata configuration", false)

	root.AddCommand(cmd)
}

// sequenceView is the list output.
type sequenceView struct {
	Enabled      bool                      `json:"enabled"`
	Cursor       int                       `json:"cursor"`
	Entries      []domain.NamedTabataEntry `json:"entries"`
	TotalSeconds int                       `json:"total_seconds"`
}

func addSequenceListCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sequence entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSequence(cmd, false, func(a *app, w io.Writer, output string) error {
				return writeSequence(w, output, a.engine.Sequence())
			})
		},
	})
}

func addSequenceAddCmd(parent *cobra.Command) {
	var tf tabataFlags
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Append an entry; unset flags copy the current tabata configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSequence(cmd, true, func(a *app, w io.Writer, output string) error {
				seq := a.engine.Sequence()
				cfg, _ := tf.apply(cmd.Flags(), a.engine.Settings().Tabata)
				entry, err := seq.AddEntry(optionalArg(args, 0), cfg)
				if err != nil {
					return errors.NewExitCode2Error(err)
				}
				return writeEntryResult(w, output, "added", seq.Len(), entry)
			})
		},
	}
	tf.register(cmd.Flags())
	parent.AddCommand(cmd)
}

func addSequenceRemoveCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "remove <position>",
		Short: "Remove the entry at position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSequence(cmd, true, func(a *app, w io.Writer, output string) error {
				seq := a.engine.Sequence()
				index, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				entries := seq.Entries()
				if err := seq.RemoveEntryAt(index); err != nil {
					return errors.NewExitCode2Error(err)
				}
				return writeEntryResult(w, output, "removed", index+1, entries[index])
			})
		},
	})
}

func addSequenceReplaceCmd(parent *cobra.Command) {
	var tf tabataFlags
	cmd := &cobra.Command{
		Use:   "replace <position> [name]",
		Short: "Replace the entry at position; unset flags keep its values",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSequence(cmd, true, func(a *app, w io.Writer, output string) error {
				seq := a.engine.Sequence()
				index, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				entries := seq.Entries()
				if index >= len(entries) {
					return errors.NewExitCode2Error(errors.Wrapf(errors.ErrSequenceIndexOutOfRange, "position %d of %d", index+1, len(entries)))
				}
				name := optionalArg(args, 1)
				if name == "" {
					name = entries[index].Name
				}
				cfg, _ := tf.apply(cmd.Flags(), entries[index].TabataConfig)
				entry, err := seq.ReplaceEntryAt(index, name, cfg)
				if err != nil {
					return errors.NewExitCode2Error(err)
				}
				return writeEntryResult(w, output, "replaced", index+1, entry)
			})
		},
	}
	tf.register(cmd.Flags())
	parent.AddCommand(cmd)
}

func addSequenceClearCmd(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every entry and disable sequence mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSequence(cmd, true, func(a *app, w io.Writer, output string) error {
				seq := a.engine.Sequence()
				if err := seq.Clear(); err != nil {
					return err
				}
				return writeSequence(w, output, seq)
			})
		},
	})
}

func addSequenceToggleCmd(parent *cobra.Command, use, short string, on bool) {
	parent.AddCommand(&cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSequence(cmd, true, func(a *app, w io.Writer, output string) error {
				seq := a.engine.Sequence()
				if err := seq.EnableSequenceMode(on); err != nil {
					return err
				}
				return writeSequence(w, output, seq)
			})
		},
	})
}

// withSequence opens the app, runs fn against it and, when
// save is set, persists the settings afterwards.
func withSequence(cmd *cobra.Command, save bool, fn func(*app, io.Writer, string) error) error {
	ctx := cmd.Context()
	output := cmd.Flag("output").Value.String()

	a, err := openApp(ctx, GetLogger())
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := fn(a, cmd.OutOrStdout(), output); err != nil {
		return err
	}
	if save {
		a.saveSettings()
	}
	return nil
}

// parsePosition converts a 1-based position argument to an index.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, errors.NewExitCode2Error(errors.Wrapf(errors.ErrInvalidArgument, "position must be a positive number, got %q", arg))
	}
	return n - 1, nil
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// describeTabata summarizes a configuration on one line.
func describeTabata(cfg domain.TabataConfig) string {
	s := fmt.Sprintf("%ds work / %ds rest x%d", cfg.WorkSeconds, cfg.RestSeconds, cfg.CyclesPerSet)
	if cfg.TotalSets > 1 {
		s += fmt.Sprintf(", %d sets / %ds between", cfg.TotalSets, cfg.RestBetweenSetsSeconds)
	}
	return s
}

func writeSequence(w io.Writer, output string, seq *timer.SequenceManager) error {
	view := sequenceView{
		Enabled:      seq.Enabled(),
		Cursor:       seq.Cursor(),
		Entries:      seq.Entries(),
		TotalSeconds: timer.SequenceSeconds(seq.Entries()),
	}
	if view.Entries == nil {
		view.Entries = []domain.NamedTabataEntry{}
	}
	if output == OutputJSON {
		return writeJSON(w, view)
	}

	state := warnStyle.Render("disabled")
	if view.Enabled {
		state = successStyle.Render("enabled")
	}
	_, _ = fmt.Fprintf(w, "Sequence mode %s, %d entries, %s total\n", state, len(view.Entries), formatClock(view.TotalSeconds))
	for i, entry := range view.Entries {
		_, _ = fmt.Fprintf(w, "  %d. %s  %s  %s\n", i+1, entry.Name,
			dimStyle.Render(describeTabata(entry.TabataConfig)), formatClock(entry.TotalSeconds()))
	}
	return nil
}

// entryResult is the JSON output of add, remove and replace.
type entryResult struct {
	Status   string                  `json:"status"`
	Position int                     `json:"position"`
	Entry    domain.NamedTabataEntry `json:"entry"`
}

func writeEntryResult(w io.Writer, output, status string, position int, entry domain.NamedTabataEntry) error {
	if output == OutputJSON {
		return writeJSON(w, entryResult{Status: status, Position: position, Entry: entry})
	}
	_, err := fmt.Fprintf(w, "%s %s %d. %s  %s\n", checkmark(), titleCase(status), position, entry.Name, dimStyle.Render(describeTabata(entry.TabataConfig)))
	return err
}
