package copywriter

import (
	"context"
	"io"
	"net/http"
	"reflect"
	"strings"
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

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestCleanLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			"plain lines pass through",
			"Great Sound Quality\nAll Day Battery Life",
			[]string{"Great Sound Quality", "All Day Battery Life"},
		},
		{
			"numbering stripped",
			"1. First Line\n2) Second Line\n3- Third Line",
			[]string{"First Line", "Second Line", "Third Line"},
		},
		{
			"quotes and blanks dropped",
			"\"Quoted Line\"\n\n   \nKept Line",
			[]string{"Quoted Line", "Kept Line"},
		},
		{
			"all noise",
			"1.\n\"\"\n",
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanLines(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("CleanLines(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestGenerateParsesCompletions(t *testing.T) {
	var gotPath, gotAuth string
	client := newLMStudioClient(&config.Config{}, testLogger())
	client.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		gotAuth = req.Header.Get("Authorization")
		body := `{"choices":[{"text":"1. Great Sound Quality\n2. All Day Battery Life\n3. Lightweight Travel Ready Design"}]}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})}

	product := models.ProductRecord{Title: "Wireless Earbuds", Price: "$49.99", Description: "Noise cancelling earbuds"}
	lines, err := client.Generate(context.Background(), product, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []string{"Great Sound Quality", "All Day Battery Life", "Lightweight Travel Ready Design"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
	if gotPath != "/v1/completions" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotAuth != "" {
		t.Errorf("lm studio request must not carry auth header, got %q", gotAuth)
	}
}

func TestGenerateSendsBearerToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.Copywriter.OpenAIKey = "sk-test"
	client := newOpenAIClient(cfg, testLogger())

	var gotAuth string
	client.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"choices":[{"text":"One Line"}]}`)),
		}, nil
	})}

	if _, err := client.Generate(context.Background(), models.ProductRecord{Title: "Widget"}, 1); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestGenerateErrorStatus(t *testing.T) {
	client := newLMStudioClient(&config.Config{}, testLogger())
	client.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader("model not loaded")),
		}, nil
	})}

	if _, err := client.Generate(context.Background(), models.ProductRecord{Title: "Widget"}, 3); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestGenerateNoChoices(t *testing.T) {
	client := newLMStudioClient(&config.Config{}, testLogger())
	client.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"choices":[]}`)),
		}, nil
	})}

	if _, err := client.Generate(context.Background(), models.ProductRecord{Title: "Widget"}, 3); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNewProviderSelection(t *testing.T) {
	cfg := &config.Config{}
	if _, err := New(cfg, testLogger()); err != nil {
		t.Errorf("default provider: %v", err)
	}

	cfg.Copywriter.Provider = ProviderOpenAI
	if _, err := New(cfg, testLogger()); err == nil {
		t.Error("openai without key must fail")
	}
	cfg.Copywriter.OpenAIKey = "sk-test"
	if _, err := New(cfg, testLogger()); err != nil {
		t.Errorf("openai with key: %v", err)
	}

	cfg.Copywriter.Provider = "bard"
	if _, err := New(cfg, testLogger()); err == nil {
		t.Error("unknown provider must fail")
	}
}
