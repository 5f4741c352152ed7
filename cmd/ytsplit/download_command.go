package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ytsplit/internal/fetch"
	"ytsplit/internal/pipeline"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var video bool
	var timecodes string
	var fromFile string
	var keepSource bool

	cmd := &cobra.Command{
		Use:   "download [urls...]",
		Short: "Download media and split the result",
		Long: `Download one or more URLs via yt-dlp. Audio downloads are chapter-split
after tagging; with --timecodes the clip ranges are cut instead. --video
fetches the full video and supports --timecodes trimming via stream copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := append([]string(nil), args...)
			if fromFile != "" {
				fileURLs, err := readURLFile(fromFile)
				if err != nil {
					return err
				}
				urls = append(urls, fileURLs...)
			}
			if len(urls) == 0 {
				return errors.New("no URLs given (pass them as arguments or via --from-file)")
			}

			env, err := ctx.openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			var firstErr error
			for _, url := range urls {
				if err := downloadOne(cmd, env, url, video, timecodes, keepSource); err != nil {
					fmt.Fprintf(out, "%s: %v\n", url, err)
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		},
	}

	cmd.Flags().BoolVar(&video, "video", false, "Download the full video instead of audio")
	cmd.Flags().StringVarP(&timecodes, "timecodes", "t", "", "Timecode specification, e.g. \"1:00-2:30;10:00-sp@0.5\"")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Read URLs from a file (one per line, # comments)")
	cmd.Flags().BoolVar(&keepSource, "keep-source", false, "Do not move the downloaded source to the trash queue")
	return cmd
}

func downloadOne(cmd *cobra.Command, env *appEnv, url string, video bool, timecodes string, keepSource bool) error {
	var result fetch.Result
	var err error
	if video {
		result, err = env.fetcher.DownloadVideo(cmd.Context(), url)
	} else {
		result, err = env.fetcher.DownloadAudio(cmd.Context(), url)
	}
	if err != nil {
		return err
	}

	// Video downloads without timecodes stay whole.
	if video && timecodes == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s\n", result.Path)
		return nil
	}

	outcome, err := env.pipe.Process(cmd.Context(), pipeline.Request{
		Source:     result.Path,
		Spec:       timecodes,
		Video:      video,
		Uploader:   result.Uploader,
		URL:        url,
		KeepSource: keepSource,
	})
	if err != nil {
		return err
	}
	reportOutcome(cmd, outcome)
	return nil
}

func reportOutcome(cmd *cobra.Command, outcome pipeline.Outcome) {
	out := cmd.OutOrStdout()
	if outcome.Skipped {
		fmt.Fprintf(out, "Skipped: %s\n", outcome.Reason)
		return
	}
	fmt.Fprintf(out, "Created %d clip(s)\n", len(outcome.Clips))
	for _, clip := range outcome.Clips {
		fmt.Fprintf(out, "  %s\n", clip)
	}
}

// readURLFile loads URLs from a text file, one per line. Blank lines and
// lines starting with # are ignored.
func readURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open URL file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URL file: %w", err)
	}
	return urls, nil
}
