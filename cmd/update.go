package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/selfupdate"
)

var updateTarget string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update kanaz to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(
			selfupdate.WithTimeout(2*time.Minute),
			selfupdate.WithRepo(cfg.Update.Owner, cfg.Update.Repo),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		out := cmd.OutOrStdout()
		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  updateTarget,
		}, func(p selfupdate.UpdateProgress) {
			logger.Info("update progress", zap.String("stage", p.Stage))
			fmt.Fprintln(out, p.Message)
		})

		if err == nil {
			return nil
		}

		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrAlreadyLatest) {
			fmt.Fprintln(out, "Already running the latest version.")
			return nil
		}
		if os.IsPermission(errors.Unwrap(err)) || os.IsPermission(err) {
			return fmt.Errorf("%w\n\nTry running: sudo kanaz update", err)
		}

		return err
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTarget, "version", "", "Install this release tag instead of the latest")
}
