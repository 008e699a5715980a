package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"fftranscode/internal/deps"
	"fftranscode/internal/ffmpeg"
	"fftranscode/internal/logging"
	"fftranscode/internal/preflight"
)

func newCheckCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check external dependencies and the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Default())

			rows := make([][]string, 0, len(statuses)+2)
			missingRequired := false
			for _, status := range statuses {
				state := "ok"
				detail := status.Command
				if !status.Available {
					state = "missing"
					detail = status.Detail
					if !status.Optional {
						missingRequired = true
					} else {
						state = "missing (optional)"
					}
				}
				rows = append(rows, []string{status.Name, state, detail})
			}

			version := ffmpeg.Version(cmd.Context(), logging.NewNop())
			if version == "" {
				rows = append(rows, []string{"Engine version", "unknown", "version banner not recognized"})
			} else {
				rows = append(rows, []string{"Engine version", "ok", version})
			}

			disk := preflight.CheckDiskSpace(filepath.Dir(cfg.Paths.HistoryDB), 0)
			state := "ok"
			if !disk.Passed {
				state = "low"
			}
			rows = append(rows, []string{disk.Name, state, disk.Detail})

			printTable(cmd.OutOrStdout(),
				[]string{"Check", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft})

			if missingRequired {
				return errors.New("required dependencies are missing")
			}
			return nil
		},
	}
}
