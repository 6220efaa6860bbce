package utils

import (
	"fmt"
	"os"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	gtiff "github.com/google/tiff"
)

// Baseline TIFF tag IDs.
const (
	tagImageWidth  = 256
	tagImageLength = 257
)

// GetTIFFDimensions reads the pixel width and height from the first IFD of a
// TIFF file without involving the raster library. Used for dry-run listings.
func GetTIFFDimensions(filePath string) (int, int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	t, err := gtiff.Parse(f, nil, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("parse TIFF %s: %w", filePath, err)
	}
	ifds := t.IFDs()
	if len(ifds) == 0 {
		return 0, 0, fmt.Errorf("no IFD in %s", filePath)
	}
	width := firstUint(ifds[0], tagImageWidth)
	height := firstUint(ifds[0], tagImageLength)
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("missing dimension tags in %s", filePath)
	}
	return int(width), int(height), nil
}

func firstUint(ifd gtiff.IFD, tagID uint16) uint64 {
	if !ifd.HasField(tagID) {
		return 0
	}
	field := ifd.GetField(tagID)
	value := field.Value()
	b := value.Bytes()
	switch field.Type().Size() {
	case 2: // SHORT
		if len(b) >= 2 {
			return uint64(value.Order().Uint16(b))
		}
	case 4: // LONG
		if len(b) >= 4 {
			return uint64(value.Order().Uint32(b))
		}
	}
	return 0
}

// GetTIFFDPI extracts the X and Y resolution from a TIFF's EXIF block,
// falling back to 300 DPI when the file carries no usable EXIF.
func GetTIFFDPI(filePath string) (float64, float64, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return 300, 300, err
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 300, 300, fmt.Errorf("EXIF not found: %v", err)
	}

	im := exifcommon.NewIfdMapping()
	ti := exif.NewTagIndex()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return 300, 300, err
	}

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return 300, 300, err
	}

	dpiX, dpiY := 300.0, 300.0

	if tag, err := index.RootIfd.FindTagWithName("XResolution"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 {
				dpiX = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		}
	}

	if tag, err := index.RootIfd.FindTagWithName("YResolution"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 {
				dpiY = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		}
	}

	// ResolutionUnit 3 means centimeters.
	if tag, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil {
		if val, err := tag[0].Value(); err == nil {
			if u, ok := val.(uint16); ok && u == 3 {
				dpiX *= 2.54
				dpiY *= 2.54
			}
		}
	}

	return dpiX, dpiY, nil
}
