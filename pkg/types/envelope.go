package types

// Envelope is the uniform result of every facade operation. Success is the
// only reliable failure signal; Code is stable, Message is for humans.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Ok wraps data in a successful envelope.
func Ok[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

// Empty is the payload of operations that return nothing.
type Empty struct{}
