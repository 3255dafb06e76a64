package scoring

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

	"go.uber.org/zap"
)

// ErrDownstreamFailure agrupa cualquier falla del servicio de puntuacion.
var ErrDownstreamFailure = errors.New("scoring service failure")

const maxResponseBytes = 4 << 20

// Client define la interfaz para enviar evaluaciones al servicio de puntuacion.
type Client interface {
	Submit(ctx context.Context, req Request) (json.RawMessage, error)
}

// StudentInfo describe al estudiante que acompaña las respuestas.
type StudentInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	SchoolName string `json:"schoolName"`
	Grade      string `json:"grade"`
	Age        string `json:"age"`
	Interests  string `json:"interests"`
}

type Request struct {
	Answers     map[string]any `json:"answers"`
	StudentInfo StudentInfo    `json:"studentInfo"`
}

// HTTPClient implementa Client con un POST JSON y espera la respuesta completa.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) Submit(ctx context.Context, payload Request) (json.RawMessage, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit-assessment", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %v", ErrDownstreamFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrDownstreamFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("scoring error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(respBody, 512)),
		)
		return nil, fmt.Errorf("%w: status=%d", ErrDownstreamFailure, resp.StatusCode)
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: response is not json", ErrDownstreamFailure)
	}
	return json.RawMessage(respBody), nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
