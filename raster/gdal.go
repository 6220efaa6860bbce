//go:build cgo
// +build cgo

package raster

import (
	"fmt"
	"strconv"

	"github.com/lukeroth/gdal"
)

// OpenLibrary returns the GDAL-backed raster engine.
func OpenLibrary() (Library, error) {
	return gdalLibrary{}, nil
}

type gdalLibrary struct{}

func (gdalLibrary) Open(path string) (Dataset, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &gdalDataset{ds: ds}, nil
}

func (gdalLibrary) Create(path string, width, height, bands int, dt DataType, options []string) (Dataset, error) {
	drv, err := gdal.GetDriverByName("GTiff")
	if err != nil {
		return nil, fmt.Errorf("GTiff driver: %w", err)
	}
	ds := drv.Create(path, width, height, bands, toGDALType(dt), options)
	// The binding's Create returns no error; GDAL signals a rejected
	// creation (bad option combination, permissions, disk full) with a
	// null handle. Calling into a null dataset faults below Go's panic
	// machinery, so it must never leave this function.
	if ds == (gdal.Dataset{}) {
		return nil, fmt.Errorf("create %s: raster library rejected the dataset", path)
	}
	return &gdalDataset{ds: ds}, nil
}

func (gdalLibrary) DriverNames() []string {
	count := gdal.GetDriverCount()
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		names = append(names, gdal.GetDriver(i).ShortName())
	}
	return names
}

func (gdalLibrary) DriverCreationOptions(driverName string) (string, error) {
	drv, err := gdal.GetDriverByName(driverName)
	if err != nil {
		return "", fmt.Errorf("driver %s: %w", driverName, err)
	}
	return drv.MetadataItem("DMD_CREATIONOPTIONLIST", ""), nil
}

func (gdalLibrary) SetCacheMax(megabytes int) {
	gdal.SetConfigOption("GDAL_CACHEMAX", strconv.Itoa(megabytes))
}

type gdalDataset struct {
	ds gdal.Dataset
}

func (d *gdalDataset) Width() int  { return d.ds.RasterXSize() }
func (d *gdalDataset) Height() int { return d.ds.RasterYSize() }
func (d *gdalDataset) Bands() int  { return d.ds.RasterCount() }

func (d *gdalDataset) DataType() DataType {
	if d.ds.RasterCount() == 0 {
		return Unknown
	}
	return fromGDALType(d.ds.RasterBand(1).RasterDataType())
}

func (d *gdalDataset) Projection() string { return d.ds.Projection() }

func (d *gdalDataset) SetProjection(wkt string) error { return d.ds.SetProjection(wkt) }

func (d *gdalDataset) GeoTransform() [6]float64 { return d.ds.GeoTransform() }

func (d *gdalDataset) SetGeoTransform(gt [6]float64) error { return d.ds.SetGeoTransform(gt) }

func (d *gdalDataset) Band(i int) Band {
	return &gdalBand{band: d.ds.RasterBand(i), width: d.Width(), height: d.Height()}
}

func (d *gdalDataset) BuildOverviews(resampling string, factors []int) error {
	return d.ds.BuildOverviews(resampling, len(factors), factors, 0, nil, gdal.DummyProgress, nil)
}

func (d *gdalDataset) Close() error {
	d.ds.Close()
	return nil
}

type gdalBand struct {
	band   gdal.RasterBand
	width  int
	height int
}

func (b *gdalBand) Read(buf any) error {
	return b.band.IO(gdal.Read, 0, 0, b.width, b.height, buf, b.width, b.height, 0, 0)
}

func (b *gdalBand) Write(buf any) error {
	return b.band.IO(gdal.Write, 0, 0, b.width, b.height, buf, b.width, b.height, 0, 0)
}

func (b *gdalBand) NoDataValue() (float64, bool) {
	return b.band.NoDataValue()
}

func (b *gdalBand) SetNoDataValue(v float64) error {
	return b.band.SetNoDataValue(v)
}

func (b *gdalBand) SetMetadataItem(name, value, domain string) error {
	return b.band.SetMetadataItem(name, value, domain)
}

func toGDALType(dt DataType) gdal.DataType {
	switch dt {
	case Byte:
		return gdal.Byte
	case UInt16:
		return gdal.UInt16
	case Int16:
		return gdal.Int16
	case UInt32:
		return gdal.UInt32
	case Int32:
		return gdal.Int32
	case Float32:
		return gdal.Float32
	case Float64:
		return gdal.Float64
	default:
		return gdal.Unknown
	}
}

func fromGDALType(dt gdal.DataType) DataType {
	switch dt {
	case gdal.Byte:
		return Byte
	case gdal.UInt16:
		return UInt16
	case gdal.Int16:
		return Int16
	case gdal.UInt32:
		return UInt32
	case gdal.Int32:
		return Int32
	case gdal.Float32:
		return Float32
	case gdal.Float64:
		return Float64
	default:
		return Unknown
	}
}
