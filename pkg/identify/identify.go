package identify

import (
	"context"
	"errors"
)

// Identification failure modes. Both route the scan to manual entry; they
// are signals, not hard failures.
var (
	// ErrItemNotFound means the external service has no product for the code.
	ErrItemNotFound = errors.New("identify: item not found")
	// ErrFeatureUnavailable means the capability (e.g. image recognition)
	// is not enabled on this installation.
	ErrFeatureUnavailable = errors.New("identify: feature unavailable")
)

// ProductTemplate is the data an identification service returns for a
// recognized product.
type ProductTemplate struct {
	Name       string
	PriceCents int64
	Category   string
	Barcode    string
}

// Identifier resolves products that are not in the local catalog through
// an external recognition service. Implementations may take a network
// round-trip; callers hold the scan in-flight gate while waiting.
type Identifier interface {
	// IdentifyByBarcode looks up a barcode against the external service.
	IdentifyByBarcode(ctx context.Context, barcode string) (*ProductTemplate, error)
	// IdentifyByImage recognizes a product from a base64-encoded capture.
	IdentifyByImage(ctx context.Context, imageData string) (*ProductTemplate, error)
}

// --- Disabled identifier (no external service configured) ---

type disabledIdentifier struct{}

// NewDisabledIdentifier returns an Identifier that recognizes nothing.
// Every lookup falls through to manual entry, which keeps the terminal
// fully usable offline.
func NewDisabledIdentifier() Identifier {
	return &disabledIdentifier{}
}

func (disabledIdentifier) IdentifyByBarcode(ctx context.Context, barcode string) (*ProductTemplate, error) {
	return nil, ErrItemNotFound
}

func (disabledIdentifier) IdentifyByImage(ctx context.Context, imageData string) (*ProductTemplate, error) {
	return nil, ErrFeatureUnavailable
}
