package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Kdheeru12/ad-generator/internal/config"
)

const (
	defaultTTSEndpoint = "https://translate.google.com/translate_tts"
	defaultTTSLanguage = "en"
	defaultTTSTimeout  = 30 * time.Second
)

// GoogleSynthesizer fetches speech audio from the Google Translate TTS
// endpoint and probes the written asset for its real playback duration.
type GoogleSynthesizer struct {
	endpoint string
	lang     string
	client   *http.Client
	probe    func(ctx context.Context, path string) (float64, error)
}

func NewGoogleSynthesizer(cfg *config.Config) *GoogleSynthesizer {
	endpoint := cfg.TTS.Endpoint
	if endpoint == "" {
		endpoint = defaultTTSEndpoint
	}
	lang := cfg.TTS.Language
	if lang == "" {
		lang = defaultTTSLanguage
	}
	timeout := defaultTTSTimeout
	if cfg.TTS.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TTS.TimeoutSeconds) * time.Second
	}
	return &GoogleSynthesizer{
		endpoint: endpoint,
		lang:     lang,
		client:   &http.Client{Timeout: timeout},
		probe:    ProbeAudioDuration,
	}
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("empty narration text")
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", s.lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tts request failed: status %d", resp.StatusCode)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create audio file: %w", err)
	}
	if _, err = io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(outPath)
		return 0, fmt.Errorf("failed to write audio file: %w", err)
	}
	if err = out.Close(); err != nil {
		return 0, err
	}

	// Duration comes from the asset itself, never from the text length.
	return s.probe(ctx, outPath)
}
