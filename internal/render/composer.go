package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultFontSize = 60

// FFmpegComposer renders one slide into a timed clip: the image is resized
// to the frame, overlay text is drawn on it, and ffmpeg encodes the frame
// with zoom and fades, muxed with the narration track.
type FFmpegComposer struct {
	width    int
	height   int
	fontPath string
	fontSize float64
	timeout  time.Duration
	logger   logger.Logger
}

func NewFFmpegComposer(cfg *config.Config, log logger.Logger) *FFmpegComposer {
	width, height := FrameSize(cfg.Render.Orientation)
	fontSize := cfg.Render.FontSize
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}
	return &FFmpegComposer{
		width:    width,
		height:   height,
		fontPath: cfg.Render.FontPath,
		fontSize: fontSize,
		timeout:  time.Duration(cfg.Render.SlideTimeoutSeconds) * time.Second,
		logger:   log,
	}
}

func (c *FFmpegComposer) Compose(ctx context.Context, slide *Slide) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	dir := filepath.Dir(slide.ImagePath)
	framePath := filepath.Join(dir, fmt.Sprintf("frame_%03d.png", slide.Index))
	if err := c.renderFrame(slide.ImagePath, slide.Text, framePath); err != nil {
		return "", errors.Wrap(err, "render frame")
	}
	defer os.Remove(framePath)

	clipPath := filepath.Join(dir, fmt.Sprintf("clip_%03d.mp4", slide.Index))
	cmd := exec.CommandContext(ctx, "ffmpeg", composeArgs(framePath, slide.AudioPath, clipPath, slide.Duration, c.width, c.height)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(clipPath)
		return "", fmt.Errorf("ffmpeg compose failed: %v, stderr: %s", err, stderr.String())
	}
	return clipPath, nil
}

func (c *FFmpegComposer) renderFrame(imagePath, text, outPath string) error {
	src, err := loadImage(imagePath)
	if err != nil {
		return err
	}

	face, err := c.loadFace()
	if err != nil {
		return err
	}

	dc := gg.NewContext(c.width, c.height)
	dc.DrawImage(resizeImage(src, c.width, c.height), 0, 0)
	dc.SetFontFace(face)
	drawOverlay(dc, text, c.width, c.height)
	return dc.SavePNG(outPath)
}

// loadFace loads the configured font, falling back to the embedded Go
// regular face so a missing font file never fails a slide.
func (c *FFmpegComposer) loadFace() (font.Face, error) {
	if c.fontPath != "" {
		if data, err := os.ReadFile(c.fontPath); err == nil {
			if f, err := truetype.Parse(data); err == nil {
				return truetype.NewFace(f, &truetype.Options{Size: c.fontSize}), nil
			}
		}
		c.logger.Warnf("font %q not usable, falling back to embedded face", c.fontPath)
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: c.fontSize}), nil
}

func composeArgs(framePath, audioPath, clipPath string, duration float64, width, height int) []string {
	args := []string{
		"-y",
		"-loop", "1",
		"-framerate", strconv.Itoa(FrameRate),
		"-i", framePath,
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath)
	} else {
		args = append(args, "-f", "lavfi", "-i", "anullsrc=channel_layout=stereo:sample_rate=44100")
	}

	fadeOutStart := duration - fadeSeconds
	if fadeOutStart < 0 {
		fadeOutStart = 0
	}
	audioFadeOutStart := duration - audioFadeSeconds
	if audioFadeOutStart < 0 {
		audioFadeOutStart = 0
	}

	vf := fmt.Sprintf(
		"zoompan=z='1+%g*on/%d':d=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%d,"+
			"fade=t=in:st=0:d=%g,fade=t=out:st=%.3f:d=%g,format=yuv420p",
		zoomRate, FrameRate, width, height, FrameRate, fadeSeconds, fadeOutStart, fadeSeconds,
	)
	af := fmt.Sprintf("afade=t=in:st=0:d=%g,afade=t=out:st=%.3f:d=%g",
		audioFadeSeconds, audioFadeOutStart, audioFadeSeconds)

	return append(args,
		"-t", fmt.Sprintf("%.3f", duration),
		"-vf", vf,
		"-af", af,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "128k",
		"-ar", "44100",
		"-ac", "2",
		clipPath,
	)
}
