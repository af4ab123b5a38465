// Package driver defines the contract BeanScript's runtime uses to turn
// scheduled instructions into actual keystrokes and window focus changes.
// The real keyboard/window backend is an external collaborator: this
// package only defines the contract and ships a safe default that never
// touches OS input, for development and tests.
package driver

import "context"

//go:generate mockgen -destination=mocks/mock_sink.go -package=mocks github.com/beanscript-lang/beanscript/internal/driver Sink

// Sink is the synchronous transport BeanScript's runtime drives. Return
// values signal transport failure only (e.g. the target process vanished,
// the backend lost its OS handle) -- never "the key doesn't exist" or
// "the window wasn't found", which are caught earlier by the key catalog
// and the dsl resolver.
type Sink interface {
	// Down sends a key-down event for scanCode.
	Down(ctx context.Context, scanCode uint16) error
	// Up sends a key-up event for scanCode.
	Up(ctx context.Context, scanCode uint16) error
	// Focus directs subsequent Down/Up calls at the named window. An empty
	// title means "whatever currently has focus".
	Focus(ctx context.Context, windowTitle string) error
}
