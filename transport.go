package totalconnect

import "context"

// Transport reaches the remote service. A returned error means the call
// itself could not complete and is treated as a transient failure.
type Transport interface {
	Call(ctx context.Context, operation string, params ...any) (RawResult, error)
}

// TransportFunc adapts a function into a Transport.
type TransportFunc func(ctx context.Context, operation string, params ...any) (RawResult, error)

func (f TransportFunc) Call(ctx context.Context, operation string, params ...any) (RawResult, error) {
	return f(ctx, operation, params...)
}
