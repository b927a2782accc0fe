package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cleaning-intake/internal/api"
	"cleaning-intake/internal/llm"
)

var errEmptyReply = errors.New("response carries no reply")

func (c *Controller) requestReply(ctx context.Context, messages []llm.Message) (string, error) {
	body, err := json.Marshal(api.ChatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("could not marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}

	var out api.ChatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if out.Reply == "" {
		return "", errEmptyReply
	}
	return out.Reply, nil
}
