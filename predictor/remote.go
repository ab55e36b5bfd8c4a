package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type RemoteSpec struct {
	BaseURL     string `json:"base_url" yaml:"base_url"`
	PredictPath string `json:"predict_path,omitempty" yaml:"predict_path,omitempty"`
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("model server http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("model server http error: status=%d body=%s", e.StatusCode, e.Body)
}

type remoteResponse struct {
	Predictions []float64 `json:"predictions"`
}

// Remote forwards the table to a model server, e.g. a Python process holding
// the pickled estimator.
type Remote struct {
	baseURL     string
	predictPath string
	apiKey      string
	timeout     time.Duration
	httpClient  *http.Client
}

func NewRemote(spec RemoteSpec, opts Options) (*Remote, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(spec.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("remote model: base_url required")
	}
	path := strings.TrimSpace(spec.PredictPath)
	if path == "" {
		path = "/predict"
	}
	timeout := opts.RemoteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Remote{
		baseURL:     baseURL,
		predictPath: path,
		apiKey:      spec.APIKey,
		timeout:     timeout,
		httpClient:  client,
	}, nil
}

func (r *Remote) Predict(ctx context.Context, t Table) ([]float64, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(t); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+r.predictPath, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode model server response: %w", err)
	}
	if len(out.Predictions) != t.Len() {
		return nil, fmt.Errorf("model server returned %d predictions for %d rows", len(out.Predictions), t.Len())
	}
	return out.Predictions, nil
}
