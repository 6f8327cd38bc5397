package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/introlaser/shop-bot/internal/llm"
)

// CheckReceipt runs the validity check. Transport and API failures are
// caught here and degrade to a negative verdict: the submission gets
// rejected and can be resent, the pipeline never sees the error.
func (c *Client) CheckReceipt(ctx context.Context, text string) llm.Verdict {
	rid := uuid.New().String()
	start := time.Now()

	answer, err := c.complete(ctx, c.prompts.ValiditySystem, text)
	if err != nil {
		c.log.Error("llm.check.degraded",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Verdict{IsReceipt: false}
	}

	verdict := llm.ParseVerdict(answer)
	if verdict.IsReceipt {
		c.log.Info("llm.check.ok",
			"req_id", rid, "reason", verdict.Reason,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	} else {
		c.log.Info("llm.check.rejected",
			"req_id", rid, "reason", verdict.Reason,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
	return verdict
}

// ExtractDate asks for the payment date in DD.MM.YYYY. Transport
// failures and unparsable answers both come back as ok=false.
func (c *Client) ExtractDate(ctx context.Context, text string) (time.Time, bool) {
	rid := uuid.New().String()
	start := time.Now()

	answer, err := c.complete(ctx, c.prompts.DateSystem, text)
	if err != nil {
		c.log.Error("llm.date.degraded",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return time.Time{}, false
	}

	date, ok := llm.ParseReceiptDate(answer, c.loc)
	c.log.Info("llm.date.done",
		"req_id", rid, "answer", strings.TrimSpace(answer), "parsed", ok,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return date, ok
}

// complete performs one stateless chat completion and returns the first
// choice's content.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, buf.String())
	}
	return buf.Bytes(), nil
}
