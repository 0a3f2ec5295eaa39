package reconcile

import "context"

// Bridge sends literal commands to the model engine.
type Bridge interface {
	// Execute issues one command and returns the engine's literal reply.
	Execute(ctx context.Context, command string) (string, error)
}

// BatchBridge is implemented by bridges that can issue many commands in one call.
type BatchBridge interface {
	Bridge

	// ExecuteBatch issues commands in order.
	ExecuteBatch(ctx context.Context, commands []string) error
}
