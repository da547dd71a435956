package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/timer"
)

//nolint:gochecknoglobals // cached renderer, built on first use
var (
	glamourRenderer     *glamour.TermRenderer
	glamourRendererOnce sync.Once
)

// getGlamourRenderer returns a cached glamour renderer, or nil if one could
// not be built.
func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			glamourRenderer = r
		}
	})
	return glamourRenderer
}

// AddPlanCommand adds the plan command to the root command.
func AddPlanCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the phase schedule of the next session",
		Long: `Print every phase the next session will go through, with its length and
start offset, for the saved mode, configuration and sequence.

Examples:
  judotimer plan           # Rendered table
  judotimer plan -o json   # Machine-readable schedule`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cmd, cmd.OutOrStdout())
		},
	}

	root.AddCommand(cmd)
}

// runPlan expands the saved settings into a schedule.
func runPlan(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	output := cmd.Flag("output").Value.String()

	a, err := openApp(ctx, GetLogger())
	if err != nil {
		return err
	}
	defer a.close(ctx)

	plan := timer.BuildPlan(a.engine.Snapshot(), a.engine.PrepareSeconds())
	if output == OutputJSON {
		return writeJSON(w, plan)
	}

	md := planMarkdown(plan)
	if r := getGlamourRenderer(); r != nil {
		if rendered, renderErr := r.Render(md); renderErr == nil {
			md = rendered
		}
	}
	_, err = fmt.Fprint(w, md)
	return err
}

// planMarkdown renders a plan as a markdown table.
func planMarkdown(plan timer.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s plan\n\n", modeLabel(plan.Mode))

	if plan.Mode == constants.ModeStopwatch {
		b.WriteString("A stopwatch counts up until you stop it; it has no fixed schedule.\n")
		return b.String()
	}

	sequence := false
	for _, step := range plan.Steps {
		if step.Entry != "" {
			sequence = true
			break
		}
	}

	if sequence {
		b.WriteString("| # | Entry | Phase | Cycle | Set | Length | Starts |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
	} else {
		b.WriteString("| # | Phase | Cycle | Set | Length | Starts |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
	}

	for i, step := range plan.Steps {
		fmt.Fprintf(&b, "| %d |", i+1)
		if sequence {
			fmt.Fprintf(&b, " %s |", step.Entry)
		}
		fmt.Fprintf(&b, " %s | %d | %d | %s | %s |\n",
			phaseLabel(step.Phase), step.Cycle, step.Set, formatClock(step.Seconds), formatClock(step.StartsAt))
	}

	fmt.Fprintf(&b, "\n**Total:** %s (%d phases)\n", formatClock(plan.TotalSeconds), len(plan.Steps))
	return b.String()
}
