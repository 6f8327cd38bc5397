package openai

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/introlaser/shop-bot/internal/llm"
)

type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// Client implements llm.Classifier over the chat/completions endpoint.
type Client struct {
	cfg        Config
	prompts    llm.Prompts
	loc        *time.Location
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, prompts llm.Prompts, loc *time.Location, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		prompts:    prompts,
		loc:        loc,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}
