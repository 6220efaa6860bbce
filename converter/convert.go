package converter

import (
	"fmt"
	"strconv"
	"time"

	"aeropack/contracts"
	"aeropack/raster"
)

// FailureKind names the conversion stage that failed.
type FailureKind string

const (
	KindOpen   FailureKind = "open"
	KindCreate FailureKind = "create"
	KindCopy   FailureKind = "copy"
)

// ConversionError wraps a raster-library error with the stage it occurred in
// and the path it concerns.
type ConversionError struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Convert runs one work item through the raster library and reports the
// outcome. No error or panic escapes this boundary; every failure becomes a
// failed outcome with its elapsed time still recorded, so the scheduler can
// treat all items uniformly.
func Convert(lib raster.Library, opts EncodeOptions, item contracts.WorkItem) contracts.ConversionOutcome {
	start := time.Now()
	err := convertOne(lib, opts, item)
	outcome := contracts.ConversionOutcome{Item: item, Elapsed: time.Since(start)}
	if err != nil {
		outcome.ErrorDetail = err.Error()
		return outcome
	}
	outcome.Succeeded = true
	return outcome
}

func convertOne(lib raster.Library, opts EncodeOptions, item contracts.WorkItem) (err error) {
	// stage and stagePath track where the conversion currently is, so a
	// recovered library panic is reported against the right stage.
	stage := KindOpen
	stagePath := item.SourcePath
	defer func() {
		if r := recover(); r != nil {
			err = &ConversionError{Kind: stage, Path: stagePath, Err: fmt.Errorf("raster library panic: %v", r)}
		}
	}()

	src, err := lib.Open(item.SourcePath)
	if err != nil {
		return &ConversionError{Kind: KindOpen, Path: item.SourcePath, Err: err}
	}
	defer src.Close()

	width := src.Width()
	height := src.Height()
	bands := src.Bands()
	dataType := src.DataType()

	stage = KindCreate
	stagePath = item.DestPath
	dst, err := lib.Create(item.DestPath, width, height, bands, dataType, opts.CreationOptions(item.UseAcceleration))
	if err != nil {
		return &ConversionError{Kind: KindCreate, Path: item.DestPath, Err: err}
	}
	defer dst.Close()

	stage = KindCopy

	if err := dst.SetProjection(src.Projection()); err != nil {
		return &ConversionError{Kind: KindCopy, Path: item.DestPath, Err: fmt.Errorf("set projection: %w", err)}
	}
	if err := dst.SetGeoTransform(src.GeoTransform()); err != nil {
		return &ConversionError{Kind: KindCopy, Path: item.DestPath, Err: fmt.Errorf("set geotransform: %w", err)}
	}

	buf, err := raster.MakeBuffer(dataType, width*height)
	if err != nil {
		return &ConversionError{Kind: KindCopy, Path: item.SourcePath, Err: err}
	}
	for i := 1; i <= bands; i++ {
		srcBand := src.Band(i)
		dstBand := dst.Band(i)
		if err := srcBand.Read(buf); err != nil {
			return &ConversionError{Kind: KindCopy, Path: item.SourcePath, Err: fmt.Errorf("read band %d: %w", i, err)}
		}
		if err := dstBand.Write(buf); err != nil {
			return &ConversionError{Kind: KindCopy, Path: item.DestPath, Err: fmt.Errorf("write band %d: %w", i, err)}
		}
		// Sources with no declared sentinel get 0.
		noData, ok := srcBand.NoDataValue()
		if !ok {
			noData = 0
		}
		if err := dstBand.SetNoDataValue(noData); err != nil {
			return &ConversionError{Kind: KindCopy, Path: item.DestPath, Err: fmt.Errorf("set no-data on band %d: %w", i, err)}
		}
	}

	if err := dst.BuildOverviews(opts.Resampling, opts.OverviewFactors); err != nil {
		return &ConversionError{Kind: KindCopy, Path: item.DestPath, Err: fmt.Errorf("build overviews: %w", err)}
	}
	for i := 1; i <= bands; i++ {
		dstBand := dst.Band(i)
		if err := dstBand.SetMetadataItem("COMPRESSION", "JPEG", "IMAGE_STRUCTURE"); err != nil {
			return &ConversionError{Kind: KindCopy, Path: item.DestPath, Err: fmt.Errorf("tag band %d: %w", i, err)}
		}
		if err := dstBand.SetMetadataItem("JPEG_QUALITY", strconv.Itoa(opts.JPEGQuality), "IMAGE_STRUCTURE"); err != nil {
			return &ConversionError{Kind: KindCopy, Path: item.DestPath, Err: fmt.Errorf("tag band %d: %w", i, err)}
		}
	}
	return nil
}
