// Package ffmpeg wraps the ffprobe and ffmpeg binaries used to build video
// testimonial thumbnails.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs binaries found on PATH.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w\nStderr: %s", name, err, stderr.String())
	}
	return out.Bytes(), nil
}

// Tool bundles the binaries' runner with the directory used for scratch files.
type Tool struct {
	Runner  Runner
	TempDir string // empty means os.TempDir()
}

func New() *Tool {
	return &Tool{Runner: ExecRunner{}}
}

// ffprobeOutput holds the part of ffprobe's JSON output we read.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// GetVideoDuration uses ffprobe to get the duration of a video file.
func (t *Tool) GetVideoDuration(ctx context.Context, filePath string) (time.Duration, error) {
	out, err := t.Runner.Run(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)
	if err != nil {
		return 0, err
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("error unmarshalling ffprobe output: %w\nOutput: %s", err, out)
	}
	if probe.Format.Duration == "" || probe.Format.Duration == "N/A" {
		return 0, fmt.Errorf("could not retrieve duration from ffprobe output\nOutput: %s", out)
	}
	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing duration string '%s': %w", probe.Format.Duration, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// SeekPosition picks the frame used as poster: 10% into the video, never
// later than one second. Unknown or negative durations seek to the start.
func SeekPosition(duration time.Duration) time.Duration {
	if duration <= 0 {
		return 0
	}
	seek := duration / 10
	if seek > time.Second {
		seek = time.Second
	}
	return seek
}

// ThumbnailOptions controls the encoded poster.
type ThumbnailOptions struct {
	Width    int // output width in pixels; height keeps the aspect ratio
	Quality  int // libwebp quality, 0-100
	IconSize int // play icon edge in pixels; 0 derives it from Width
}

// DefaultThumbnailOptions matches the size the wall and widget cards render.
var DefaultThumbnailOptions = ThumbnailOptions{Width: 640, Quality: 80}

// ThumbnailResult reports what GenerateThumbnail produced.
type ThumbnailResult struct {
	Duration time.Duration
	Seek     time.Duration
}

// GenerateThumbnail probes input, grabs one frame at SeekPosition, overlays a
// centered play icon and writes a WebP image to output. A failed probe is not
// fatal; the frame is then taken from the start of the video.
func (t *Tool) GenerateThumbnail(ctx context.Context, input, output string, opts ThumbnailOptions) (*ThumbnailResult, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultThumbnailOptions.Width
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultThumbnailOptions.Quality
	}
	if opts.IconSize <= 0 {
		opts.IconSize = opts.Width / 6
	}

	duration, probeErr := t.GetVideoDuration(ctx, input)
	if probeErr != nil {
		duration = 0
	}
	seek := SeekPosition(duration)

	scratch, err := os.MkdirTemp(t.TempDir, "thumb-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	icon := filepath.Join(scratch, "play.png")
	if err := WritePlayIcon(icon, opts.IconSize); err != nil {
		return nil, err
	}

	if _, err := t.Runner.Run(ctx, "ffmpeg", thumbnailArgs(input, icon, output, seek, opts)...); err != nil {
		return nil, err
	}
	if info, err := os.Stat(output); err != nil || info.Size() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no thumbnail at %s", output)
	}
	return &ThumbnailResult{Duration: duration, Seek: seek}, nil
}

func thumbnailArgs(input, icon, output string, seek time.Duration, opts ThumbnailOptions) []string {
	filter := fmt.Sprintf(
		"[0:v]scale=%d:-2[bg];[bg][1:v]overlay=(main_w-overlay_w)/2:(main_h-overlay_h)/2",
		opts.Width,
	)
	return []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", seek.Seconds()),
		"-i", input,
		"-i", icon,
		"-filter_complex", filter,
		"-frames:v", "1",
		"-c:v", "libwebp",
		"-quality", strconv.Itoa(opts.Quality),
		output,
	}
}
