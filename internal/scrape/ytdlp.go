package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}

// YtDlpMetadata extracts video metadata by running yt-dlp with a JSON dump.
type YtDlpMetadata struct {
	binary string
	runner CommandRunner
}

// NewYtDlpMetadata creates a metadata fetcher using the given yt-dlp binary.
func NewYtDlpMetadata(binary string) *YtDlpMetadata {
	return &YtDlpMetadata{binary: binary, runner: execRunner{}}
}

// Fetch runs yt-dlp and decodes the fields the retriever cares about.
func (f *YtDlpMetadata) Fetch(ctx context.Context, url string) (*VideoMetadata, error) {
	out, err := f.runner.Run(ctx, f.binary, "-J", "--no-warnings", "--skip-download", url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp metadata: %w", err)
	}

	var meta VideoMetadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, fmt.Errorf("yt-dlp metadata: %w", err)
	}
	return &meta, nil
}

// YtDlpTranscript fetches auto-generated captions by asking yt-dlp to write
// a VTT subtitle file into a scratch directory, then flattening it to text.
type YtDlpTranscript struct {
	binary string
	runner CommandRunner
}

// NewYtDlpTranscript creates a transcript fetcher using the given yt-dlp binary.
func NewYtDlpTranscript(binary string) *YtDlpTranscript {
	return &YtDlpTranscript{binary: binary, runner: execRunner{}}
}

// Fetch downloads English captions for the video id.
func (f *YtDlpTranscript) Fetch(ctx context.Context, videoID string) (string, error) {
	dir, err := os.MkdirTemp("", "claimsift-subs-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	_, err = f.runner.Run(ctx, f.binary,
		"--write-subs", "--write-auto-subs",
		"--sub-lang", "en",
		"--sub-format", "vtt",
		"--skip-download",
		"-o", filepath.Join(dir, "subs"),
		"https://www.youtube.com/watch?v="+videoID,
	)
	if err != nil {
		return "", fmt.Errorf("yt-dlp subtitles: %w", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if len(matches) == 0 {
		return "", fmt.Errorf("no subtitles available for video %s", videoID)
	}

	raw, err := os.ReadFile(matches[0])
	if err != nil {
		return "", err
	}
	return cleanVTT(string(raw)), nil
}

// cleanVTT strips WebVTT headers, cue timings, and inline tags, collapsing
// the cues into one line of text. Auto-generated captions repeat each line
// as the cue window slides, so consecutive duplicates are dropped.
func cleanVTT(raw string) string {
	var parts []string
	prev := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "WEBVTT" ||
			strings.Contains(line, "-->") ||
			strings.HasPrefix(line, "Kind:") ||
			strings.HasPrefix(line, "Language:") ||
			strings.HasPrefix(line, "NOTE") {
			continue
		}

		line = stripVTTTags(line)
		if line == "" || line == prev {
			continue
		}
		parts = append(parts, line)
		prev = line
	}

	return strings.Join(parts, " ")
}

// stripVTTTags removes inline markup like <c>, </c> and <00:00:01.234>.
func stripVTTTags(line string) string {
	var b strings.Builder
	inTag := false
	for _, r := range line {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
