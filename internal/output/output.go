package output

import (
	"context"

	"github.com/crimson-sun/tally/internal/model"
)

// Output defines the interface for receipt snapshot destinations.
type Output interface {
	Write(ctx context.Context, snap model.ReceiptSnapshot) error
	Close() error
}
