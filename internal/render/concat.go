package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// FFmpegConcatenator joins clips with the ffmpeg concat demuxer. Stream copy
// keeps slide order and the audio/video pairing of every clip intact.
type FFmpegConcatenator struct{}

func NewFFmpegConcatenator() *FFmpegConcatenator {
	return &FFmpegConcatenator{}
}

func (f *FFmpegConcatenator) Concat(ctx context.Context, clips []string, outputPath string) error {
	concatListPath := filepath.Join(filepath.Dir(clips[0]), "concat_list.txt")
	concatFile, err := os.Create(concatListPath)
	if err != nil {
		return fmt.Errorf("failed to create concat list: %w", err)
	}
	defer os.Remove(concatListPath)

	for _, clip := range clips {
		absPath, err := filepath.Abs(clip)
		if err != nil {
			concatFile.Close()
			return fmt.Errorf("failed to get absolute path for clip: %w", err)
		}
		if _, err = fmt.Fprintf(concatFile, "file '%s'\n", absPath); err != nil {
			concatFile.Close()
			return fmt.Errorf("failed to write to concat list: %w", err)
		}
	}
	if err = concatFile.Close(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", concatListPath,
		"-c", "copy",
		"-movflags", "+faststart",
		"-y", outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("ffmpeg concat failed: %v, stderr: %s", err, stderr.String())
	}
	return nil
}
