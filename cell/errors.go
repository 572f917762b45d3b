package cell

import "errors"

var (
	// ErrConfiguration rejects invalid dimensionality, material parameters,
	// thresholds or sample resolutions at construction.
	ErrConfiguration = errors.New("invalid cell configuration")

	// ErrInputShape rejects SDF snapshots whose length is not 2^dim.
	ErrInputShape = errors.New("sdf corner count mismatch")

	// ErrDegenerateGeometry rejects SDF snapshots whose least-squares
	// gradient is near zero while the corner signs are mixed: no boundary
	// plane can be fit.
	ErrDegenerateGeometry = errors.New("degenerate boundary fit")
)
