//go:build !cgo
// +build !cgo

package raster

import "errors"

// OpenLibrary fails when the binary was built without cgo, since the GDAL
// backend is unavailable.
func OpenLibrary() (Library, error) {
	return nil, errors.New("built without cgo: GDAL raster backend unavailable")
}
