package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/tally/internal/model"
	"github.com/crimson-sun/tally/internal/output"
)

// Multi fans out snapshots to multiple output.Output implementations,
// e.g. live NDJSON on stdout plus a session recording on disk. If one
// output fails, the remaining outputs still receive the snapshot.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers the snapshot to every wrapped output. Errors are
// collected but do not prevent delivery to subsequent outputs.
func (m *Multi) Write(ctx context.Context, snap model.ReceiptSnapshot) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
