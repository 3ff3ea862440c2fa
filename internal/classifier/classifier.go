// Package classifier wraps the external hand-sign model server. The core
// only depends on the shape of the contract: a 63-value landmark vector
// (21 hand landmarks x 3 coordinates) in, a label and confidence out.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kmensah/signify/internal/logger"
)

// VectorSize is the expected landmark vector length: 21 landmarks x 3 coordinates.
const VectorSize = 63

// DetectionThreshold is the minimum confidence (0-100) for a prediction
// to count as a detection; anything below reads as "no detection yet".
const DetectionThreshold = 70.0

// Sentinel labels outside the A-Z letter vocabulary.
const (
	LabelDelete = "DEL"
	LabelSpace  = "SPACE"
)

// Result is one classification of a single frame's landmarks.
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Confident reports whether the prediction clears the detection threshold.
func (r Result) Confident() bool {
	return r.Confidence >= DetectionThreshold
}

// KnownLabel reports whether the label is in the model's vocabulary:
// the 26 letters plus the DEL and SPACE sentinels.
func KnownLabel(label string) bool {
	if label == LabelDelete || label == LabelSpace {
		return true
	}
	return len(label) == 1 && label[0] >= 'A' && label[0] <= 'Z'
}

// Classifier turns a landmark vector into a labeled prediction.
type Classifier interface {
	Classify(ctx context.Context, landmarks []float64) (Result, error)
}

// Client calls a model server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Landmarks []float64 `json:"landmarks"`
}

func (c *Client) Classify(ctx context.Context, landmarks []float64) (Result, error) {
	log := logger.FromContext(ctx).WithPrefix("classifier")

	if len(landmarks) != VectorSize {
		return Result{}, fmt.Errorf("landmark vector must have %d values, got %d", VectorSize, len(landmarks))
	}

	body, err := json.Marshal(classifyRequest{Landmarks: landmarks})
	if err != nil {
		return Result{}, err
	}

	url := c.baseURL + "/v1/classify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("classification request failed: %v", err)
		return Result{}, err
	}
	defer resp.Body.Close()

	log.Debug("classification response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("classification failed: status=%d, body=%s", resp.StatusCode, string(respBody))
		return Result{}, fmt.Errorf("classify status %d: %s", resp.StatusCode, string(respBody))
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode classification response: %v", err)
		return Result{}, err
	}

	if !KnownLabel(out.Label) {
		log.Warn("model returned unknown label: %q", out.Label)
		return Result{}, fmt.Errorf("unknown label %q from model", out.Label)
	}

	log.Debug("classified: label=%s, confidence=%.1f", out.Label, out.Confidence)
	return out, nil
}
