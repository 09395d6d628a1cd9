package gg18

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// RandomDelay picks the per-poll delay for one ceremony run: uniform in
// [min, max), floored at min. The same delay is reused for every round of the
// run, matching how parties pace their mailbox polling.
func RandomDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	d := time.Duration(rand.Int63n(int64(max)))
	if d < min {
		return min
	}
	return d
}

// HTTPClient implements Client against a round-runner endpoint. Each round is
// a POST of the opaque round context; the runner carries out the actual
// cryptography and mailbox exchange and returns the next context.
type HTTPClient struct {
	baseURL string
	token   string
	delay   time.Duration
	http    *http.Client
}

func NewHTTPClient(baseURL, token string, delay time.Duration) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, token: token, delay: delay, http: &http.Client{}}
}

type roundRequest struct {
	Context string `json:"context"`
	DelayMs int64  `json:"delay_ms"`
}

type roundResponse struct {
	Context string `json:"context"`
	Error   string `json:"error"`
}

func (c *HTTPClient) post(ctx context.Context, path string, body any) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out roundResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("round %s: decoding response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("round %s: %s (status %d)", path, out.Error, resp.StatusCode)
		}
		return "", fmt.Errorf("round %s: unexpected status %d", path, resp.StatusCode)
	}
	return out.Context, nil
}

func (c *HTTPClient) round(ctx context.Context, path, roundCtx string) (string, error) {
	return c.post(ctx, path, roundRequest{Context: roundCtx, DelayMs: c.delay.Milliseconds()})
}

type keygenNewContextRequest struct {
	Threshold int `json:"t"`
	Parties   int `json:"n"`
}

func (c *HTTPClient) KeygenNewContext(ctx context.Context, threshold, parties int) (string, error) {
	return c.post(ctx, "/keygen/new_context", keygenNewContextRequest{Threshold: threshold, Parties: parties})
}

func (c *HTTPClient) KeygenRound1(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/keygen/round1", roundCtx)
}

func (c *HTTPClient) KeygenRound2(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/keygen/round2", roundCtx)
}

func (c *HTTPClient) KeygenRound3(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/keygen/round3", roundCtx)
}

func (c *HTTPClient) KeygenRound4(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/keygen/round4", roundCtx)
}

func (c *HTTPClient) KeygenRound5(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/keygen/round5", roundCtx)
}

type signNewContextRequest struct {
	Threshold int    `json:"t"`
	Parties   int    `json:"n"`
	KeyStore  string `json:"key_store"`
	Message   string `json:"message"`
}

func (c *HTTPClient) SignNewContext(ctx context.Context, threshold, parties int, keyStore, message string) (string, error) {
	return c.post(ctx, "/sign/new_context", signNewContextRequest{
		Threshold: threshold,
		Parties:   parties,
		KeyStore:  keyStore,
		Message:   message,
	})
}

func (c *HTTPClient) SignRound0(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round0", roundCtx)
}

func (c *HTTPClient) SignRound1(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round1", roundCtx)
}

func (c *HTTPClient) SignRound2(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round2", roundCtx)
}

func (c *HTTPClient) SignRound3(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round3", roundCtx)
}

func (c *HTTPClient) SignRound4(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round4", roundCtx)
}

func (c *HTTPClient) SignRound5(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round5", roundCtx)
}

func (c *HTTPClient) SignRound6(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round6", roundCtx)
}

func (c *HTTPClient) SignRound7(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round7", roundCtx)
}

func (c *HTTPClient) SignRound8(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round8", roundCtx)
}

func (c *HTTPClient) SignRound9(ctx context.Context, roundCtx string) (string, error) {
	return c.round(ctx, "/sign/round9", roundCtx)
}
