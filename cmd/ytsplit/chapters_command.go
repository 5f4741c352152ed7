package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"ytsplit/internal/chapters"
	"ytsplit/internal/media/ffprobe"
	"ytsplit/internal/textutil"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters FILE",
		Short: "Show the chapter and split-point table of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			probe, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), source)
			if err != nil {
				return err
			}
			total := probe.DurationSeconds()

			extraction, err := chapters.Extract(probe, source, total)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if extraction.Origin == chapters.OriginNone {
				fmt.Fprintln(out, "No chapters found (neither embedded nor .cue sheet)")
				return nil
			}

			rows := make([][]string, 0, len(extraction.Chapters))
			for i, ch := range extraction.Chapters {
				title := ch.Title
				if title == "" {
					title = fmt.Sprintf("Track %02d", i+1)
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					textutil.FormatClock(ch.Start),
					textutil.FormatClock(ch.End),
					title,
				})
			}

			origin := "embedded chapters"
			if extraction.Origin == chapters.OriginCue {
				origin = "cue sheet " + filepath.Base(extraction.CuePath)
			}
			fmt.Fprintf(out, "%s  (%s, duration %s)\n", filepath.Base(source), origin, textutil.FormatClock(total))
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Title"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
			))

			fmt.Fprint(out, "Split points: ")
			for i, point := range extraction.SplitPoints {
				if i > 0 {
					fmt.Fprint(out, ", ")
				}
				fmt.Fprint(out, textutil.FormatClock(point))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
