package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/console"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/vocab"
)

var playMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz on plain stdin/stdout",
	Long: "Play one quiz session in line mode. Answer with the option number or " +
		"the kana itself; type q to quit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := newLoader().Load(cmd.Context(), cfg.Data.Kana, cfg.Data.Food)
		for _, f := range v.Failures {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", f)
		}

		events, closeEvents, err := openEvents()
		if err != nil {
			return err
		}
		defer closeEvents()

		con := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
		d := quiz.NewDriver(v, con, driverOptions(events))

		if playMode == "" {
			d.ShowStart()
			return errors.New("choose a mode with --mode")
		}
		mode, err := vocab.ParseMode(playMode)
		if err != nil {
			return err
		}
		return con.Play(d, mode)
	},
}

func init() {
	playCmd.Flags().StringVarP(&playMode, "mode", "m", "", "Quiz mode: hiragana, katakana or food")
}
