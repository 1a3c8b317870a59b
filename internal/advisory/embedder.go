// Package advisory encodes legal text into a fixed-size vector through an external
// feature-extraction endpoint.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/tidwall/gjson"
)

// MaxTextLength bounds the text accepted by Embed.
const MaxTextLength = 4096

// Embedder turns text into a vector. Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// HTTPEmbedder posts {"inputs": text} to a feature-extraction endpoint. The endpoint may answer
// with a single vector, one vector per token, or a batch of those; token vectors are mean-pooled.
type HTTPEmbedder struct {
	url    string
	token  string
	client *http.Client
}

func NewHTTPEmbedder(url, token string, timeout time.Duration) *HTTPEmbedder {
	return &HTTPEmbedder{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	text = strings.TrimSpace(text)
	if err := checkText(text); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("embedding service unavailable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, apperrors.Upstream("embedding service unavailable", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, apperrors.Upstream("embedding service error", fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	vec, err := ParseVector(body)
	if err != nil {
		return nil, apperrors.Upstream("malformed embedding response", err)
	}
	return vec, nil
}

// ParseVector reads a feature-extraction response. A batch yields its first element and a
// token matrix is averaged column-wise.
func ParseVector(body []byte) ([]float64, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not JSON")
	}
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("response is not an array")
	}

	// Strip batch dimensions until at most a matrix remains.
	for depth(result) > 2 {
		result = result.Get("0")
	}

	switch depth(result) {
	case 1:
		return toFloats(result)
	case 2:
		return meanPool(result)
	default:
		return nil, fmt.Errorf("empty embedding")
	}
}

func depth(r gjson.Result) int {
	d := 0
	for r.IsArray() {
		arr := r.Array()
		if len(arr) == 0 {
			return 0
		}
		d++
		r = arr[0]
	}
	return d
}

func toFloats(r gjson.Result) ([]float64, error) {
	arr := r.Array()
	out := make([]float64, len(arr))
	for i, v := range arr {
		if v.Type != gjson.Number {
			return nil, fmt.Errorf("element %d is not a number", i)
		}
		out[i] = v.Float()
	}
	return out, nil
}

func meanPool(matrix gjson.Result) ([]float64, error) {
	rows := matrix.Array()
	var sum []float64
	for i, row := range rows {
		vec, err := toFloats(row)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		if sum == nil {
			sum = make([]float64, len(vec))
		}
		if len(vec) != len(sum) {
			return nil, fmt.Errorf("token %d has %d dimensions, want %d", i, len(vec), len(sum))
		}
		for j, v := range vec {
			sum[j] += v
		}
	}
	n := float64(len(rows))
	for j := range sum {
		sum[j] /= n
	}
	return sum, nil
}

func checkText(text string) error {
	if text == "" {
		return apperrors.Validation("invalid input", map[string]string{"text": "This field is required."})
	}
	if len([]rune(text)) > MaxTextLength {
		return apperrors.Validation("invalid input", map[string]string{
			"text": fmt.Sprintf("Ensure this field has no more than %d characters.", MaxTextLength),
		})
	}
	return nil
}

// Disabled answers every call with an upstream error. It stands in when no endpoint is configured.
type Disabled struct{}

func (Disabled) Embed(_ context.Context, text string) ([]float64, error) {
	if err := checkText(strings.TrimSpace(text)); err != nil {
		return nil, err
	}
	return nil, apperrors.Upstream("advisory encoder is not configured", nil)
}
