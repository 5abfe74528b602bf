package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/vocab"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Inspect the quiz datasets",
}

var datasetsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load both datasets and report counts, alphabet pools and problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		v := newLoader().Load(cmd.Context(), cfg.Data.Kana, cfg.Data.Food)

		fmt.Fprintf(out, "kana entries: %d\nfood entries: %d\n\n", len(v.Entries()), len(v.Food()))

		modes := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("MODE", "QUESTIONS", "STATUS")
		for _, m := range v.AvailableModes() {
			status := "ok"
			if !m.Available {
				status = "unavailable"
			}
			modes.Row(string(m.Mode), fmt.Sprint(m.Questions), status)
		}
		lipgloss.Fprintln(out, modes)

		for _, s := range kana.AllScripts() {
			pool := v.Pool(s)
			fmt.Fprintf(out, "%s pool (%d): %s\n", s, pool.Len(), pool)
		}

		warnings := 0
		for _, m := range vocab.AllModes() {
			for _, q := range v.Questions(m) {
				if bad := kana.Foreign(q.Answer, q.Script); len(bad) > 0 {
					warnings++
					fmt.Fprintf(out, "warning: %s answer %q has characters outside %s: %q\n",
						m, q.Answer, q.Script, string(bad))
				}
			}
		}

		for _, f := range v.Failures {
			fmt.Fprintln(out, "error:", f)
		}
		if n := len(v.Failures); n > 0 {
			return fmt.Errorf("%d dataset(s) failed to load", n)
		}
		if warnings == 0 {
			fmt.Fprintln(out, "\nall datasets ok")
		}
		return nil
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsCheckCmd)
}
