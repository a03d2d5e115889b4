package browser

import (
	"context"
	"errors"
)

// Driver errors. Backends wrap their native errors into these so page
// objects can branch on them with errors.Is.
var (
	ErrTimeout         = errors.New("timed out waiting for condition")
	ErrNotInteractable = errors.New("element not interactable")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrNoSuchElement   = errors.New("no such element")
	ErrUnsupported     = errors.New("operation not supported by backend")
)

// Driver is a single browser session.
type Driver interface {
	// Name returns the browser name the session was opened for
	Name() string

	// Navigate loads url and waits for the load event
	Navigate(ctx context.Context, url string) error

	// Reload reloads the current document
	Reload(ctx context.Context) error

	// Back goes one entry back in history
	Back(ctx context.Context) error

	// Title returns the document title
	Title(ctx context.Context) (string, error)

	// CurrentURL returns the current location
	CurrentURL(ctx context.Context) (string, error)

	// Find returns all elements currently matching loc without waiting.
	// No match is not an error.
	Find(ctx context.Context, loc Locator) ([]Element, error)

	// Close ends the session
	Close() error
}

// Element is a reference to an on-screen element, valid until the
// document it belongs to is replaced.
type Element interface {
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	Click(ctx context.Context) error
	Clear(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
	ScrollIntoView(ctx context.Context) error
	IsDisplayed(ctx context.Context) (bool, error)
	IsEnabled(ctx context.Context) (bool, error)
	Find(ctx context.Context, loc Locator) ([]Element, error)
}

// Launcher opens browser sessions for a backend.
type Launcher interface {
	// Open starts a fresh session in the named browser
	Open(ctx context.Context, browserName string) (Driver, error)

	// Close releases the backend
	Close() error
}
