package graph

import (
	"context"
	"sync"
	"time"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Args      []any
	Timestamp time.Time
}

// MockGraphClient is a scripted GraphClient for tests. Results can be bound
// to an exact Cypher string with OnQuery, or queued FIFO with AddQueryResult
// for statements that have no binding. Unbound statements with an empty
// queue return an empty result.
type MockGraphClient struct {
	mu sync.RWMutex

	connected    bool
	healthStatus types.HealthStatus
	calls        []MockCall

	labels            []string
	relationshipTypes []string
	labelsError       error
	relTypesError     error

	bound        map[string]QueryResult
	boundErrors  map[string]error
	queryResults []QueryResult
	queryError   error
	connectError error
	closeError   error
}

// NewMockGraphClient creates a new, already connected mock graph client.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		connected:    true,
		healthStatus: types.Healthy("mock graph client"),
		calls:        make([]MockCall, 0),
		bound:        make(map[string]QueryResult),
		boundErrors:  make(map[string]error),
	}
}

func (m *MockGraphClient) record(method string, args ...any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Args:      args,
		Timestamp: time.Now(),
	})
}

// Connect records the call and simulates connection.
func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect")
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close")
	if m.closeError != nil {
		return m.closeError
	}
	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Health")
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return m.healthStatus
}

// Query records the call and returns the scripted result.
func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.query("Query", cypher, params)
}

// ReadQuery records the call and returns the scripted result.
func (m *MockGraphClient) ReadQuery(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	return m.query("ReadQuery", cypher, params)
}

func (m *MockGraphClient) query(method, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(method, cypher, params)

	if !m.connected {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if err, ok := m.boundErrors[cypher]; ok {
		return QueryResult{}, err
	}
	if result, ok := m.bound[cypher]; ok {
		return result, nil
	}
	if m.queryError != nil {
		return QueryResult{}, m.queryError
	}
	if len(m.queryResults) > 0 {
		result := m.queryResults[0]
		m.queryResults = m.queryResults[1:]
		return result, nil
	}

	return QueryResult{
		Records: []map[string]any{},
		Columns: []string{},
	}, nil
}

// Labels records the call and returns the configured labels.
func (m *MockGraphClient) Labels(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Labels")
	if m.labelsError != nil {
		return nil, m.labelsError
	}
	return append([]string(nil), m.labels...), nil
}

// RelationshipTypes records the call and returns the configured types.
func (m *MockGraphClient) RelationshipTypes(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("RelationshipTypes")
	if m.relTypesError != nil {
		return nil, m.relTypesError
	}
	return append([]string(nil), m.relationshipTypes...), nil
}

// SetLabels configures what Labels() returns.
func (m *MockGraphClient) SetLabels(labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels = labels
}

// SetRelationshipTypes configures what RelationshipTypes() returns.
func (m *MockGraphClient) SetRelationshipTypes(relTypes ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relationshipTypes = relTypes
}

// SetLabelsError configures Labels() to fail.
func (m *MockGraphClient) SetLabelsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labelsError = err
}

// SetRelationshipTypesError configures RelationshipTypes() to fail.
func (m *MockGraphClient) SetRelationshipTypesError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relTypesError = err
}

// OnQuery binds result to an exact Cypher statement.
func (m *MockGraphClient) OnQuery(cypher string, result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bound[cypher] = result
}

// OnQueryError binds an error to an exact Cypher statement.
func (m *MockGraphClient) OnQueryError(cypher string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boundErrors[cypher] = err
}

// AddQueryResult queues a result for the next unbound statement.
func (m *MockGraphClient) AddQueryResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryResults = append(m.queryResults, result)
}

// SetQueryError configures every unbound statement to fail.
func (m *MockGraphClient) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
}

// SetConnectError configures Connect() to return an error.
func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCloseError configures Close() to return an error.
func (m *MockGraphClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

// SetHealthStatus configures what Health() returns while connected.
func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// GetCalls returns all recorded method calls.
func (m *MockGraphClient) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetCallsByMethod returns all calls to a specific method.
func (m *MockGraphClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// IsConnected returns whether the mock is in connected state.
func (m *MockGraphClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}
