// Package anchor pins JSON documents to a content-addressed store so a
// complaint snapshot can be proven unmodified after the fact.
package anchor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("lighthouse API key not configured")

// Anchorer submits a document and returns its content identifier.
type Anchorer interface {
	AnchorJSON(ctx context.Context, v interface{}) (string, error)
}

// LighthouseClient talks to the Lighthouse IPFS node API. Uploads are a
// single multipart POST; the response carries the CID as "Hash".
type LighthouseClient struct {
	apiKey     string
	nodeURL    string
	gatewayURL string
	httpClient *http.Client
}

func NewLighthouseClient(apiKey, nodeURL, gatewayURL string) *LighthouseClient {
	return &LighthouseClient{
		apiKey:     apiKey,
		nodeURL:    nodeURL,
		gatewayURL: gatewayURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

func (c *LighthouseClient) AnchorJSON(ctx context.Context, v interface{}) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding anchor document: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "complaint.json")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(payload); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeURL+"/api/v0/add", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading to lighthouse: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("lighthouse returned %d: %s", resp.StatusCode, b)
	}

	var result addResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding lighthouse response: %w", err)
	}
	if result.Hash == "" {
		return "", errors.New("lighthouse response missing CID")
	}

	return result.Hash, nil
}

// GatewayURL returns the public URL for a pinned CID.
func (c *LighthouseClient) GatewayURL(cid string) string {
	return c.gatewayURL + "/" + cid
}

var _ Anchorer = (*LighthouseClient)(nil)
