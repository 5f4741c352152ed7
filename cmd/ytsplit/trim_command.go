package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ytsplit/internal/pipeline"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".mov":  true,
}

func newTrimCommand(ctx *commandContext) *cobra.Command {
	var timecodes string
	var keepSource bool

	cmd := &cobra.Command{
		Use:   "trim FILE",
		Short: "Cut timecode ranges out of a local file",
		Long: `Apply the timecode mini-language to an existing file. Audio sources are
re-encoded with optional fades; video sources (by extension) are trimmed
via lossless stream copy. The "sp" notation resolves against the file's
chapter boundaries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(timecodes) == "" {
				return errors.New("--timecodes is required")
			}

			source, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			env, err := ctx.openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			outcome, err := env.pipe.Process(cmd.Context(), pipeline.Request{
				Source:     source,
				Spec:       timecodes,
				Video:      videoExtensions[strings.ToLower(filepath.Ext(source))],
				KeepSource: keepSource,
			})
			if err != nil {
				return err
			}
			reportOutcome(cmd, outcome)
			if outcome.Skipped {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clips written next to %s\n", filepath.Base(source))
			return nil
		},
	}

	cmd.Flags().StringVarP(&timecodes, "timecodes", "t", "", "Timecode specification, e.g. \"0:30-1:00@0.5;2:00-\"")
	cmd.Flags().BoolVar(&keepSource, "keep-source", true, "Keep the source file (disable to trash it after trimming)")
	return cmd
}
