package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ytsplit/internal/history"
	"ytsplit/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var clipsFor string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs and produced clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history recording is disabled in the configuration")
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if clipsFor != "" {
				return renderClips(cmd, store, clipsFor)
			}
			return renderRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().StringVar(&clipsFor, "clips", "", "Show the clips of one run ID")
	return cmd
}

func renderRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		source := run.SourcePath
		if source == "" {
			source = run.URL
		}
		if source != "" {
			source = filepath.Base(source)
		}
		detail := run.Error
		if detail == "" && run.Status == history.StatusCompleted {
			detail = fmt.Sprintf("%d clip(s)", run.ClipCount)
		}
		rows = append(rows, []string{
			shortRunID(run.RunID),
			run.StartedAt.Local().Format(time.DateTime),
			run.Mode,
			source,
			run.Status,
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Mode", "Source", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}

func renderClips(cmd *cobra.Command, store *history.Store, runID string) error {
	clips, err := store.ClipsForRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(clips) == 0 {
		fmt.Fprintf(out, "No clips recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(clips))
	for _, clip := range clips {
		interval := ""
		if clip.End > clip.Start {
			interval = textutil.FormatClock(clip.Start) + " - " + textutil.FormatClock(clip.End)
		}
		rows = append(rows, []string{
			strconv.Itoa(clip.Track),
			filepath.Base(clip.OutputPath),
			interval,
			humanize.Bytes(uint64(clip.SizeBytes)),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "File", "Range", "Size"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	))
	return nil
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
