package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"ytsplit/internal/fetch"
	"ytsplit/internal/pipeline"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var keepSource bool

	cmd := &cobra.Command{
		Use:   "split [files...]",
		Short: "Chapter-split local media files",
		Long: `Split local files along their embedded chapters (or a sibling .cue
sheet). Without arguments, every .mp3 in the configured audio download
directory is processed. Files without chapters are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			files := append([]string(nil), args...)
			if len(files) == 0 {
				files, err = defaultSplitTargets(env.cfg.Paths.AudioDownloadDir)
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to split")
				return nil
			}

			var firstErr error
			for _, file := range files {
				absolute, err := filepath.Abs(file)
				if err != nil {
					return err
				}
				if _, err := os.Stat(absolute); err != nil {
					return fmt.Errorf("source %s: %w", file, err)
				}

				outcome, err := env.pipe.Process(cmd.Context(), pipeline.Request{
					Source:     absolute,
					Uploader:   fetch.ReadUploader(absolute),
					KeepSource: keepSource,
				})
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", filepath.Base(absolute), err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				reportOutcome(cmd, outcome)
			}
			return firstErr
		},
	}

	cmd.Flags().BoolVar(&keepSource, "keep-source", false, "Do not move processed sources to the trash queue")
	return cmd
}

func defaultSplitTargets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read download directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
