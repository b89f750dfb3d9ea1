package beam

import "errors"

var (
	// ErrInvalidGeometry is returned when the beam length or flexural rigidity is not positive.
	// Analysis aborts before any matrix work.
	ErrInvalidGeometry = errors.New("beam: invalid geometry")

	// ErrInvalidSupport is returned for unknown support kinds or positions outside the beam.
	ErrInvalidSupport = errors.New("beam: invalid support")

	// ErrInvalidLoad is returned for non-finite magnitudes or empty load spans.
	ErrInvalidLoad = errors.New("beam: invalid load")
)
