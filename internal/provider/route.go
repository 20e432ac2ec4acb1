package provider

import "context"

// Request is the unified completion request shape shared by all providers.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`

	// Metadata travels with the request for logging and tracing only.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Message is a single turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is the unified completion response shape.
type Response struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Content  string `json:"content"`
}

// Executor performs one call against a single named backend. It is the only
// coupling point between the router and a real provider client, so test
// fakes and network executors are interchangeable.
type Executor[T any] interface {
	Do(ctx context.Context, req *Request) (T, error)
}

// CallFunc is supplied by the caller per Route invocation; the router binds
// it to each candidate's executor in turn.
type CallFunc[T any] func(ctx context.Context, exec Executor[T]) (T, error)

// Route identifies one backend candidate. Routes are immutable after
// registration; re-registering a name replaces the prior route.
type Route[T any] struct {
	// Name is the routing key, breaker key and log key.
	Name string

	// Exec performs the actual backend call.
	Exec Executor[T]

	// CostClass is an ordinal used only for cost ordering, lower is cheaper.
	CostClass int

	// Weight is reserved for future load distribution.
	Weight int
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc[T any] func(ctx context.Context, req *Request) (T, error)

func (f ExecutorFunc[T]) Do(ctx context.Context, req *Request) (T, error) {
	return f(ctx, req)
}
