package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ProxyClient posts {"message": ...} to a focuslist proxy and reads back
// {"reply": ...} or {"error": ...}.
type ProxyClient struct {
	url    string
	client *http.Client
}

func NewProxyClient(url string, client *http.Client) *ProxyClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &ProxyClient{url: url, client: client}
}

func (p *ProxyClient) Complete(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{"message": text})
	if err != nil {
		return "", fmt.Errorf("encode proxy request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("read proxy response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := string(raw)
		if msg := gjson.GetBytes(raw, "error"); msg.Exists() {
			body = msg.String()
		}
		return "", &ProviderError{Status: resp.StatusCode, Body: body}
	}
	if !gjson.ValidBytes(raw) {
		return "", &NetworkError{Err: fmt.Errorf("proxy response is not valid json")}
	}
	reply := gjson.GetBytes(raw, "reply")
	if !reply.Exists() || strings.TrimSpace(reply.String()) == "" {
		return "", ErrEmptyReply
	}
	return reply.String(), nil
}
