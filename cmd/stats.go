package cmd

import (
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/vocab"
)

var statsMisses int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per mode and the most missed words",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.StoreEnabled {
			return errors.New("stats need the event store; drop --no-store")
		}
		events, closeEvents, err := openEvents()
		if err != nil {
			return err
		}
		defer closeEvents()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		stats, err := events.ModeStats(ctx)
		if err != nil {
			return fmt.Errorf("mode stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}

		modes := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("MODE", "SESSIONS", "COMPLETED", "ANSWERS", "CORRECT", "ACCURACY")
		for _, s := range stats {
			modes.Row(
				vocab.Mode(s.Mode).DisplayName(),
				fmt.Sprint(s.Sessions),
				fmt.Sprint(s.CompletedSessions),
				fmt.Sprint(s.Answers),
				fmt.Sprint(s.Correct),
				fmt.Sprintf("%.0f%%", s.Accuracy()*100),
			)
		}
		lipgloss.Fprintln(out, modes)

		misses, err := events.TopMisses(ctx, statsMisses)
		if err != nil {
			return fmt.Errorf("top misses: %w", err)
		}
		if len(misses) == 0 {
			return nil
		}

		missed := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("MODE", "ANSWER", "MISSES")
		for _, m := range misses {
			missed.Row(m.Mode, m.CorrectAnswer, fmt.Sprint(m.Misses))
		}
		fmt.Fprintln(out, "\nMost missed:")
		lipgloss.Fprintln(out, missed)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsMisses, "misses", "n", 10, "Number of most missed words to list")
}
