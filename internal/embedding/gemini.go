package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TaskType selects the retrieval optimization mode for an embedding.
type TaskType string

const (
	TaskDocument TaskType = "RETRIEVAL_DOCUMENT"
	TaskQuery    TaskType = "RETRIEVAL_QUERY"
)

// Embedder maps a text to a fixed-length vector. Document mode is used while
// indexing, query mode while answering.
type Embedder interface {
	Embed(ctx context.Context, text string, task TaskType) ([]float32, error)
}

// GeminiEmbedder calls the Gemini embedContent endpoint.
type GeminiEmbedder struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

func NewGemini(baseURL, model, apiKey string) *GeminiEmbedder {
	return &GeminiEmbedder{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type embedRequest struct {
	Model    string       `json:"model"`
	Content  embedContent `json:"content"`
	TaskType TaskType     `json:"taskType"`
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (g *GeminiEmbedder) Embed(ctx context.Context, text string, task TaskType) ([]float32, error) {
	payload := embedRequest{
		Model:    "models/" + g.model,
		Content:  embedContent{Parts: []embedPart{{Text: text}}},
		TaskType: task,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:embedContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding request failed: %d, %s", resp.StatusCode, string(body))
	}

	var decoded embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(decoded.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding response contained no values")
	}
	return decoded.Embedding.Values, nil
}
