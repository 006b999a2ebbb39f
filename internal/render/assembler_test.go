package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
)

func testLogger() logger.Logger {
	log := logger.NewApiLogger(&config.Config{})
	log.InitLogger()
	return log
}

type fakeSynth struct {
	duration float64
	failOn   string
	texts    []string
}

func (s *fakeSynth) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	s.texts = append(s.texts, text)
	if s.failOn != "" && text == s.failOn {
		return 0, errors.New("voice backend unavailable")
	}
	if err := os.WriteFile(outPath, []byte("mp3"), 0o644); err != nil {
		return 0, err
	}
	return s.duration, nil
}

type fakeComposer struct {
	dir       string
	failIndex int
	slides    []Slide
}

func (c *fakeComposer) Compose(ctx context.Context, slide *Slide) (string, error) {
	c.slides = append(c.slides, *slide)
	if c.failIndex >= 0 && slide.Index == c.failIndex {
		return "", errors.New("encode failed")
	}
	clip := filepath.Join(c.dir, fmt.Sprintf("clip_%03d.mp4", slide.Index))
	if err := os.WriteFile(clip, []byte("clip"), 0o644); err != nil {
		return "", err
	}
	return clip, nil
}

type fakeConcat struct {
	clips  []string
	err    error
	called bool
}

func (c *fakeConcat) Concat(ctx context.Context, clips []string, outputPath string) error {
	c.called = true
	c.clips = append([]string(nil), clips...)
	if c.err != nil {
		return c.err
	}
	return os.WriteFile(outputPath, []byte("video"), 0o644)
}

func newTask(t *testing.T, images int, bullets []string) *models.RenderTask {
	t.Helper()
	workDir := t.TempDir()
	paths := make([]string, 0, images)
	for i := 0; i < images; i++ {
		p := filepath.Join(workDir, fmt.Sprintf("img_%03d.jpg", i))
		if err := os.WriteFile(p, []byte("jpg"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return &models.RenderTask{
		JobID:      "9b9f7f4e-2a67-4f5f-9f67-0d9f6f1c2a11",
		Title:      "Widget",
		Price:      "$19.99",
		Bullets:    bullets,
		ImagePaths: paths,
		OutputPath: filepath.Join(workDir, "out.mp4"),
		WorkDir:    workDir,
	}
}

func TestAssembleRendersSlidesInOrder(t *testing.T) {
	task := newTask(t, 3, []string{"Waterproof", "Two year warranty"})
	synth := &fakeSynth{duration: 3.0}
	comp := &fakeComposer{dir: task.WorkDir, failIndex: -1}
	concat := &fakeConcat{}

	a := NewAssembler(synth, comp, concat, testLogger())
	res, err := a.Assemble(context.Background(), task)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if res.SlideCount != 3 {
		t.Errorf("SlideCount = %d, want 3", res.SlideCount)
	}
	wantTexts := []string{"Widget. $19.99", "Waterproof", "Two year warranty"}
	if len(comp.slides) != 3 {
		t.Fatalf("composed %d slides, want 3", len(comp.slides))
	}
	for i, slide := range comp.slides {
		if slide.Index != i {
			t.Errorf("slide %d composed out of order (index %d)", i, slide.Index)
		}
		if slide.Text != wantTexts[i] {
			t.Errorf("slide %d text = %q, want %q", i, slide.Text, wantTexts[i])
		}
		if math.Abs(slide.Duration-3.5) > 1e-9 {
			t.Errorf("slide %d duration = %v, want 3.5", i, slide.Duration)
		}
	}
	if math.Abs(res.Duration-10.5) > 1e-9 {
		t.Errorf("total duration = %v, want 10.5", res.Duration)
	}
	if len(concat.clips) != 3 {
		t.Errorf("concat received %d clips, want 3", len(concat.clips))
	}
	if _, err := os.Stat(task.OutputPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestAssembleSilentFallbackKeepsSlide(t *testing.T) {
	task := newTask(t, 2, []string{"Waterproof"})
	synth := &fakeSynth{duration: 3.0, failOn: "Waterproof"}
	comp := &fakeComposer{dir: task.WorkDir, failIndex: -1}
	concat := &fakeConcat{}

	a := NewAssembler(synth, comp, concat, testLogger())
	res, err := a.Assemble(context.Background(), task)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if res.SlideCount != 2 {
		t.Fatalf("SlideCount = %d, want 2", res.SlideCount)
	}
	if comp.slides[1].AudioPath != "" {
		t.Errorf("failed narration should leave slide silent, got %q", comp.slides[1].AudioPath)
	}
	// 2.0s fallback + 0.5s post-roll.
	if math.Abs(comp.slides[1].Duration-2.5) > 1e-9 {
		t.Errorf("silent slide duration = %v, want 2.5", comp.slides[1].Duration)
	}
	if comp.slides[0].AudioPath == "" {
		t.Errorf("healthy narration should keep its audio")
	}
}

func TestAssembleComposeFailureSkipsSlide(t *testing.T) {
	task := newTask(t, 3, []string{"Waterproof", "Two year warranty"})
	synth := &fakeSynth{duration: 3.0}
	comp := &fakeComposer{dir: task.WorkDir, failIndex: 1}
	concat := &fakeConcat{}

	a := NewAssembler(synth, comp, concat, testLogger())
	res, err := a.Assemble(context.Background(), task)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if res.SlideCount != 2 {
		t.Errorf("SlideCount = %d, want 2", res.SlideCount)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Index != 1 {
		t.Errorf("Skipped = %+v, want single entry for slide 1", res.Skipped)
	}
	if len(concat.clips) != 2 {
		t.Errorf("concat received %d clips, want 2", len(concat.clips))
	}
}

func TestAssembleAllSlidesFail(t *testing.T) {
	task := newTask(t, 1, nil)
	synth := &fakeSynth{duration: 3.0}
	comp := &fakeComposer{dir: task.WorkDir, failIndex: 0}
	concat := &fakeConcat{}

	a := NewAssembler(synth, comp, concat, testLogger())
	_, err := a.Assemble(context.Background(), task)
	if !errors.Is(err, ErrNoRenderableContent) {
		t.Fatalf("err = %v, want ErrNoRenderableContent", err)
	}
	if concat.called {
		t.Errorf("concat must not run without clips")
	}
	if _, err := os.Stat(task.OutputPath); !os.IsNotExist(err) {
		t.Errorf("no output file expected, stat err = %v", err)
	}
}

func TestAssembleNoImages(t *testing.T) {
	task := newTask(t, 0, []string{"Waterproof"})
	a := NewAssembler(&fakeSynth{}, &fakeComposer{failIndex: -1}, &fakeConcat{}, testLogger())

	_, err := a.Assemble(context.Background(), task)
	if !errors.Is(err, ErrNoRenderableContent) {
		t.Fatalf("err = %v, want ErrNoRenderableContent", err)
	}
}

func TestAssembleTitleOnly(t *testing.T) {
	task := newTask(t, 1, nil)
	synth := &fakeSynth{duration: 2.0}
	comp := &fakeComposer{dir: task.WorkDir, failIndex: -1}
	concat := &fakeConcat{}

	a := NewAssembler(synth, comp, concat, testLogger())
	res, err := a.Assemble(context.Background(), task)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if res.SlideCount != 1 {
		t.Errorf("SlideCount = %d, want 1", res.SlideCount)
	}
	if len(synth.texts) != 1 || synth.texts[0] != "Widget. $19.99" {
		t.Errorf("synth texts = %v", synth.texts)
	}
}

func TestAssembleCleansUpTempAssets(t *testing.T) {
	task := newTask(t, 2, []string{"Waterproof"})
	synth := &fakeSynth{duration: 3.0}
	comp := &fakeComposer{dir: task.WorkDir, failIndex: -1}
	concat := &fakeConcat{}

	a := NewAssembler(synth, comp, concat, testLogger())
	if _, err := a.Assemble(context.Background(), task); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	entries, err := os.ReadDir(task.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) == ".mp3" {
			t.Errorf("narration file %s survived cleanup", name)
		}
		if name != "out.mp4" && filepath.Ext(name) == ".mp4" {
			t.Errorf("clip file %s survived cleanup", name)
		}
	}
	if _, err := os.Stat(task.OutputPath); err != nil {
		t.Errorf("output must survive cleanup: %v", err)
	}
}
