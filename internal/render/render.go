package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// FrameRate is the fixed output frame rate for every clip and the final video.
	FrameRate = 24

	// postRollSeconds is added after the narration so the voice is never cut off.
	postRollSeconds = 0.5

	// fallbackNarrationSeconds is used when a slide has no usable narration.
	fallbackNarrationSeconds = 2.0

	zoomRate         = 0.004
	fadeSeconds      = 0.5
	audioFadeSeconds = 0.2
)

var ErrNoRenderableContent = errors.New("no renderable content")

// Slide is the atomic rendering unit: one image, one overlay text line and
// its narration. AudioPath is empty for silent slides.
type Slide struct {
	Index     int
	ImagePath string
	Text      string
	AudioPath string
	Duration  float64
}

type SkippedSlide struct {
	Index  int
	Reason string
}

type RenderResult struct {
	OutputPath string
	SlideCount int
	Duration   float64
	Skipped    []SkippedSlide
}

// Synthesizer turns a text line into a speech asset at outPath and reports
// its real playback duration in seconds.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outPath string) (float64, error)
}

// Composer renders one slide into a timed clip and returns the clip path.
type Composer interface {
	Compose(ctx context.Context, slide *Slide) (string, error)
}

// Concatenator joins composed clips, in order, into one output file.
type Concatenator interface {
	Concat(ctx context.Context, clips []string, outputPath string) error
}

// SlideCount applies the reconciliation rule: the title slide plus one slide
// per bullet, bounded by the number of images.
func SlideCount(imageCount, bulletCount int) int {
	count := bulletCount + 1
	if imageCount < count {
		count = imageCount
	}
	if count < 0 {
		return 0
	}
	return count
}

// SlideText returns the overlay text for a slide index. Slide 0 always
// carries the title and price.
func SlideText(index int, title, price string, bullets []string) string {
	if index == 0 {
		return strings.TrimSpace(fmt.Sprintf("%s. %s", title, price))
	}
	return bullets[index-1]
}

// FrameSize maps the configured orientation to pixel dimensions.
func FrameSize(orientation string) (width, height int) {
	if orientation == "landscape" {
		return 1920, 1080
	}
	return 1080, 1920
}
