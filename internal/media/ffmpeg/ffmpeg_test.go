package ffmpeg

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestBuildArgsAudioReencodeWithFade(t *testing.T) {
	args := BuildArgs(Request{
		Input:     "/media/show.mp3",
		Output:    "/media/show__tc01.mp3",
		Start:     60,
		End:       150,
		DropVideo: true,
		Audio:     &AudioEncode{Codec: "libmp3lame", Bitrate: "192k"},
		Fade:      0.5,
	})
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-ss 60.000",
		"-to 150.000",
		"-vn",
		"-c:a libmp3lame",
		"-b:a 192k",
		"afade=t=in:st=0:d=0.500,afade=t=out:st=89.500:d=0.500",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected args to contain %q, got %q", want, joined)
		}
	}
}

func TestBuildArgsStreamCopyUsesDuration(t *testing.T) {
	args := BuildArgs(Request{
		Input:       "/media/show.mp4",
		Output:      "/media/clip.mp4",
		Start:       10,
		End:         40,
		UseDuration: true,
		StreamCopy:  true,
	})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-t 30.000") {
		t.Fatalf("expected -t duration form, got %q", joined)
	}
	if strings.Contains(joined, "-to ") {
		t.Fatalf("expected no -to flag, got %q", joined)
	}
	if !strings.Contains(joined, "-c copy") {
		t.Fatalf("expected stream copy, got %q", joined)
	}
}

func TestBuildArgsFloorsZeroLengthDuration(t *testing.T) {
	args := BuildArgs(Request{
		Input:       "/media/a.mp3",
		Output:      "/media/clip.mp3",
		Start:       50,
		End:         50,
		UseDuration: true,
	})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-t 0.010") {
		t.Fatalf("expected minimum -t duration, got %q", joined)
	}
}

func TestBuildArgsCoverMuxAndMetadata(t *testing.T) {
	args := BuildArgs(Request{
		Input:  "/media/album.mp3",
		Output: "/media/album - 03 - Song.mp3",
		Start:  0,
		End:    180,
		Cover:  "/tmp/cover.jpg",
		Audio:  &AudioEncode{Codec: "libmp3lame", Bitrate: "192k"},
		Metadata: &Metadata{
			Title:       "Song",
			Track:       3,
			Album:       "album",
			Artist:      "Uploader",
			AlbumArtist: "Uploader",
		},
	})
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i /tmp/cover.jpg",
		"-map 0:a:0",
		"-map 1:0",
		"-disposition:v:0 attached_pic",
		"-metadata title=Song",
		"-metadata track=3",
		"-metadata album=album",
		"-metadata artist=Uploader",
		"-metadata album_artist=Uploader",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected args to contain %q, got %q", want, joined)
		}
	}
}

func TestFadeFilterClampsOutStart(t *testing.T) {
	got := fadeFilter(Request{Start: 0, End: 0.3, Fade: 0.5})
	if !strings.Contains(got, "afade=t=out:st=0.000") {
		t.Fatalf("expected clamped fade-out start, got %q", got)
	}
}

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  Request
	}{
		{"missing input", Request{Output: "/tmp/out.mp3", End: 1}},
		{"missing output", Request{Input: "/tmp/in.mp3", End: 1}},
		{"inverted range", Request{Input: "in", Output: "out", Start: 5, End: 1}},
		{"copy and reencode", Request{Input: "in", Output: "out", End: 1, StreamCopy: true, Audio: &AudioEncode{}}},
	}
	for _, tc := range cases {
		if err := tc.req.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCLIRunReportsCommandOnFailure(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { commandContext = original })

	cli := NewCLI(WithBinary("ffmpeg-test"))
	err := cli.Run(context.Background(), Request{Input: "in.mp3", Output: "out.mp3", End: 10})
	if err == nil {
		t.Fatal("expected run failure")
	}
	if !strings.Contains(err.Error(), "ffmpeg-test") {
		t.Fatalf("expected binary in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "-ss 0.000") {
		t.Fatalf("expected command args in error, got %v", err)
	}
}

func TestCLIExtractCoverFallsThroughFormats(t *testing.T) {
	var calls [][]string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, append([]string(nil), args...))
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { commandContext = original })

	cli := NewCLI()
	if _, err := cli.ExtractCover(context.Background(), "/media/show.mp3", t.TempDir()); err == nil {
		t.Fatal("expected extraction failure when ffmpeg fails")
	}
	if len(calls) != 2 {
		t.Fatalf("expected jpg then png attempts, got %d calls", len(calls))
	}
	if !strings.HasSuffix(calls[0][len(calls[0])-1], "cover.jpg") {
		t.Fatalf("expected first attempt to target cover.jpg, got %v", calls[0])
	}
	if !strings.HasSuffix(calls[1][len(calls[1])-1], "cover.png") {
		t.Fatalf("expected second attempt to target cover.png, got %v", calls[1])
	}
}
