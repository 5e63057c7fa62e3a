package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FailureText is shown in the OCR result area when recognition fails.
// It never blocks manual form completion.
const FailureText = "Failed to read text"

// Recognizer extracts raw text from a captured image. The engine itself is
// an external black box; the address parser only sees its output string.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// HTTPRecognizer posts the image to a recognition endpoint that answers
// {"text": "..."}.
type HTTPRecognizer struct {
	URL  string
	HTTP *http.Client
}

func NewHTTPRecognizer(url string, timeout time.Duration) *HTTPRecognizer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPRecognizer{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

func (r *HTTPRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr endpoint: status %d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	return out.Text, nil
}
