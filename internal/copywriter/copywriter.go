package copywriter

import (
	"context"
	"fmt"

	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
)

const (
	ProviderLMStudio = "lm_studio"
	ProviderOpenAI   = "openai"
)

// Copywriter produces short promotional lines for a product, one per slide.
type Copywriter interface {
	Generate(ctx context.Context, product models.ProductRecord, count int) ([]string, error)
}

// New selects the text-generation backend once at process start.
func New(cfg *config.Config, log logger.Logger) (Copywriter, error) {
	switch cfg.Copywriter.Provider {
	case ProviderLMStudio, "":
		return newLMStudioClient(cfg, log), nil
	case ProviderOpenAI:
		if cfg.Copywriter.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider selected but no api key configured")
		}
		return newOpenAIClient(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported copywriter provider: %s", cfg.Copywriter.Provider)
	}
}
