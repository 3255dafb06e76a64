package scoring

import (
	"context"
	"encoding/json"
)

// MockClient permite tests sin llamar al servicio real.
type MockClient struct {
	Response json.RawMessage
	Err      error
	Last     *Request
}

func (m *MockClient) Submit(_ context.Context, req Request) (json.RawMessage, error) {
	m.Last = &req
	return m.Response, m.Err
}
