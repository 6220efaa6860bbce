package converter

import (
	"fmt"
	"runtime"
)

// EncodeOptions describes how every destination raster in a batch is written.
type EncodeOptions struct {
	JPEGQuality     int
	TileSize        int
	NumThreads      int
	OverviewFactors []int
	Resampling      string
	// GPUBackend is the acceleration backend token the probe looks for and
	// the creation options enable, e.g. "CUDA".
	GPUBackend      string
	GPUCachePercent int
	// CacheMaxMB is the raster library's process-wide block cache, set once
	// before dispatch.
	CacheMaxMB int
}

// DefaultEncodeOptions returns the standard aerial-image profile: tiled
// JPEG at quality 90 in YCbCr with four nearest-neighbor preview levels.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality:     90,
		TileSize:        512,
		NumThreads:      runtime.NumCPU(),
		OverviewFactors: []int{2, 4, 8, 16},
		Resampling:      "NEAREST",
		GPUBackend:      "CUDA",
		GPUCachePercent: 40,
		CacheMaxMB:      2048,
	}
}

// CreationOptions renders the driver creation options for one destination.
// Acceleration options are appended only when useAcceleration is true, which
// requires both the user request and a positive capability probe upstream.
func (o EncodeOptions) CreationOptions(useAcceleration bool) []string {
	options := []string{
		"COMPRESS=JPEG",
		fmt.Sprintf("JPEG_QUALITY=%d", o.JPEGQuality),
		"PHOTOMETRIC=YCBCR",
		"TILED=YES",
		fmt.Sprintf("BLOCKXSIZE=%d", o.TileSize),
		fmt.Sprintf("BLOCKYSIZE=%d", o.TileSize),
		fmt.Sprintf("NUM_THREADS=%d", o.NumThreads),
	}
	if useAcceleration {
		options = append(options,
			"GPUNODE=AUTO",
			fmt.Sprintf("USE_%s=YES", o.GPUBackend),
			fmt.Sprintf("GPU_CACHE_SIZE=%d", o.GPUCachePercent),
			"INTERLEAVE=PIXEL",
		)
	}
	return options
}
