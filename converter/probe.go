package converter

import (
	"fmt"
	"strings"

	"aeropack/raster"
)

// ProbeAcceleration reports whether the raster library can drive the named
// acceleration backend for GTiff output. It consults only the library's own
// enumerations: the GTiff driver's advertised creation options and the driver
// registry. Any internal failure degrades to false; probing never aborts a
// batch.
func ProbeAcceleration(lib raster.Library, backend string) (available bool) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Println("Acceleration probe failed; accelerated path not available.")
			available = false
		}
	}()

	if backend == "" {
		fmt.Println("Accelerated path not available: no backend configured.")
		return false
	}

	creationOptions, err := lib.DriverCreationOptions("GTiff")
	if err == nil && strings.Contains(creationOptions, backend) {
		fmt.Printf("Accelerated path available (%s).\n", backend)
		return true
	}
	for _, name := range lib.DriverNames() {
		if strings.EqualFold(name, backend) {
			fmt.Printf("Accelerated path available (%s).\n", backend)
			return true
		}
	}
	fmt.Printf("Accelerated path not available (%s); using CPU encoding.\n", backend)
	return false
}
