package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
	"github.com/pkg/errors"
)

// Assembler drives the per-slide pipeline in strict index order and
// concatenates the surviving clips into one output file. A failing slide is
// skipped, a failing narration falls back to silence; only a pipeline-level
// failure (zero clips, concat error) is fatal.
type Assembler struct {
	synth  Synthesizer
	comp   Composer
	concat Concatenator
	logger logger.Logger
}

func NewAssembler(synth Synthesizer, comp Composer, concat Concatenator, log logger.Logger) *Assembler {
	return &Assembler{
		synth:  synth,
		comp:   comp,
		concat: concat,
		logger: log,
	}
}

func (a *Assembler) Assemble(ctx context.Context, task *models.RenderTask) (*RenderResult, error) {
	count := SlideCount(len(task.ImagePaths), len(task.Bullets))
	if count == 0 {
		return nil, ErrNoRenderableContent
	}

	var (
		clips    []string
		audio    []string
		duration float64
		skipped  []SkippedSlide
	)
	// Per-slide temp assets are deleted no matter how assembly ends.
	defer func() {
		for _, p := range audio {
			os.Remove(p)
		}
		for _, p := range clips {
			os.Remove(p)
		}
	}()

	for i := 0; i < count; i++ {
		slide := &Slide{
			Index:     i,
			ImagePath: task.ImagePaths[i],
			Text:      SlideText(i, task.Title, task.Price, task.Bullets),
		}

		audioPath, narration := a.narrate(ctx, slide, task.WorkDir)
		if audioPath != "" {
			slide.AudioPath = audioPath
			audio = append(audio, audioPath)
		}
		slide.Duration = narration + postRollSeconds

		clip, err := a.comp.Compose(ctx, slide)
		if err != nil {
			a.logger.Warnf("job %s: slide %d skipped: %v", task.JobID, i, err)
			skipped = append(skipped, SkippedSlide{Index: i, Reason: err.Error()})
			continue
		}
		clips = append(clips, clip)
		duration += slide.Duration
	}

	if len(clips) == 0 {
		return nil, ErrNoRenderableContent
	}

	if err := a.concat.Concat(ctx, clips, task.OutputPath); err != nil {
		return nil, errors.Wrap(err, "concat clips")
	}

	return &RenderResult{
		OutputPath: task.OutputPath,
		SlideCount: len(clips),
		Duration:   duration,
		Skipped:    skipped,
	}, nil
}

// narrate synthesizes the slide's narration, falling back to a silent slide
// with a fixed duration when the text is empty or synthesis fails. A single
// bad line must never fail the whole video.
func (a *Assembler) narrate(ctx context.Context, slide *Slide, workDir string) (string, float64) {
	if strings.TrimSpace(slide.Text) == "" {
		return "", fallbackNarrationSeconds
	}

	audioPath := filepath.Join(workDir, fmt.Sprintf("narration_%03d.mp3", slide.Index))
	narration, err := a.synth.Synthesize(ctx, slide.Text, audioPath)
	if err != nil || narration <= 0 {
		a.logger.Warnf("slide %d: voice generation failed, using silent fallback: %v", slide.Index, err)
		os.Remove(audioPath)
		return "", fallbackNarrationSeconds
	}
	return audioPath, narration
}
