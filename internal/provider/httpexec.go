package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultCallTimeout = 30 * time.Second

// HTTPExecutor calls a provider's completion endpoint over JSON/HTTP. It
// implements Executor[*Response].
type HTTPExecutor struct {
	name     string
	endpoint string
	client   *http.Client
}

func NewHTTPExecutor(name, endpoint string) *HTTPExecutor {
	return &HTTPExecutor{
		name:     name,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: defaultCallTimeout,
		},
	}
}

func (e *HTTPExecutor) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request for %s: %w", e.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", e.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	res, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", e.name, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", e.name, res.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", e.name, err)
	}

	if out.Provider == "" {
		out.Provider = e.name
	}

	return &out, nil
}
