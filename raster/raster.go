// Package raster is the boundary to the external raster-processing library.
// Everything pixel-related (decoding, JPEG/YCbCr encoding, tiling, overview
// generation) happens behind these interfaces; the rest of the program only
// schedules calls across them.
package raster

import "fmt"

// DataType identifies the per-pixel storage type of a band.
type DataType int

const (
	Unknown DataType = iota
	Byte
	UInt16
	Int16
	UInt32
	Int32
	Float32
	Float64
)

func (dt DataType) String() string {
	switch dt {
	case Byte:
		return "Byte"
	case UInt16:
		return "UInt16"
	case Int16:
		return "Int16"
	case UInt32:
		return "UInt32"
	case Int32:
		return "Int32"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	default:
		return "Unknown"
	}
}

// Library is the process-wide handle to the raster engine.
type Library interface {
	// Open opens an existing raster read-only.
	Open(path string) (Dataset, error)
	// Create creates a new raster with the given creation options
	// (driver-specific KEY=VALUE strings).
	Create(path string, width, height, bands int, dt DataType, options []string) (Dataset, error)
	// DriverNames enumerates the short names of all registered drivers.
	DriverNames() []string
	// DriverCreationOptions returns the named driver's advertised
	// creation-option list, as an XML fragment.
	DriverCreationOptions(driverName string) (string, error)
	// SetCacheMax tunes the engine's block cache. Set once per process,
	// before any conversion starts.
	SetCacheMax(megabytes int)
}

// Dataset is one open raster, either a read-only source or a destination
// under construction. Close must be called on every path, including failures,
// so partially written outputs are flushed.
type Dataset interface {
	Width() int
	Height() int
	Bands() int
	DataType() DataType
	Projection() string
	SetProjection(wkt string) error
	GeoTransform() [6]float64
	SetGeoTransform(gt [6]float64) error
	// Band returns the i-th band, 1-based as in the underlying library.
	Band(i int) Band
	// BuildOverviews builds internal reduced-resolution levels at the
	// given reduction factors.
	BuildOverviews(resampling string, factors []int) error
	Close() error
}

// Band is a single band of an open dataset.
type Band interface {
	// Read fills buf, a typed slice sized width*height, with the full band.
	Read(buf any) error
	// Write stores buf, a typed slice sized width*height, as the full band.
	Write(buf any) error
	NoDataValue() (float64, bool)
	SetNoDataValue(v float64) error
	SetMetadataItem(name, value, domain string) error
}

// MakeBuffer allocates a slice of the Go type matching dt, with n elements,
// suitable for Band.Read and Band.Write.
func MakeBuffer(dt DataType, n int) (any, error) {
	switch dt {
	case Byte:
		return make([]uint8, n), nil
	case UInt16:
		return make([]uint16, n), nil
	case Int16:
		return make([]int16, n), nil
	case UInt32:
		return make([]uint32, n), nil
	case Int32:
		return make([]int32, n), nil
	case Float32:
		return make([]float32, n), nil
	case Float64:
		return make([]float64, n), nil
	default:
		return nil, fmt.Errorf("unsupported pixel data type %d", int(dt))
	}
}
