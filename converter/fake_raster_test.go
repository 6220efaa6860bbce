package converter

import (
	"fmt"
	"sync"

	"aeropack/raster"
)

// fakeLibrary is an in-memory raster.Library. Sources are seeded with
// newFakeDataset; created datasets are recorded under their path so tests can
// inspect what a conversion wrote.
type fakeLibrary struct {
	mu           sync.Mutex
	sources      map[string]*fakeDataset
	created      map[string]*fakeDataset
	drivers      []string
	gtiffOptions string
	optionsErr   error
	createErr    error
	overviewErr  error
	openPanic    bool
	createPanic  bool
	cacheMaxMB   int
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		sources: make(map[string]*fakeDataset),
		created: make(map[string]*fakeDataset),
		drivers: []string{"GTiff", "HFA", "MEM"},
	}
}

func (l *fakeLibrary) Open(path string) (raster.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.openPanic {
		panic("native decoder fault")
	}
	ds, ok := l.sources[path]
	if !ok {
		return nil, fmt.Errorf("not a recognized raster: %s", path)
	}
	return ds, nil
}

func (l *fakeLibrary) Create(path string, width, height, bands int, dt raster.DataType, options []string) (raster.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.createPanic {
		panic("native encoder fault")
	}
	if l.createErr != nil {
		return nil, l.createErr
	}
	ds := &fakeDataset{
		width:    width,
		height:   height,
		dataType: dt,
		options:  options,
		bands:    make([]*fakeBand, bands),
	}
	for i := range ds.bands {
		ds.bands[i] = &fakeBand{metadata: make(map[string]string)}
	}
	ds.buildOverviewErr = l.overviewErr
	l.created[path] = ds
	return ds, nil
}

func (l *fakeLibrary) DriverNames() []string { return l.drivers }

func (l *fakeLibrary) DriverCreationOptions(driverName string) (string, error) {
	if l.optionsErr != nil {
		return "", l.optionsErr
	}
	if driverName != "GTiff" {
		return "", fmt.Errorf("no driver %s", driverName)
	}
	return l.gtiffOptions, nil
}

func (l *fakeLibrary) SetCacheMax(megabytes int) { l.cacheMaxMB = megabytes }

func (l *fakeLibrary) createdDataset(path string) *fakeDataset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.created[path]
}

type fakeDataset struct {
	width, height int
	dataType      raster.DataType
	projection    string
	geoTransform  [6]float64
	options       []string
	bands         []*fakeBand
	overviews     []int
	resampling    string
	closed        bool

	readErr          error
	buildOverviewErr error
}

func newFakeDataset(width, height, bands int, projection string, gt [6]float64) *fakeDataset {
	ds := &fakeDataset{
		width:        width,
		height:       height,
		dataType:     raster.Byte,
		projection:   projection,
		geoTransform: gt,
		bands:        make([]*fakeBand, bands),
	}
	for i := range ds.bands {
		pixels := make([]uint8, width*height)
		for p := range pixels {
			pixels[p] = uint8((p + i) % 251)
		}
		ds.bands[i] = &fakeBand{data: pixels, metadata: make(map[string]string)}
	}
	return ds
}

func (d *fakeDataset) Width() int                { return d.width }
func (d *fakeDataset) Height() int               { return d.height }
func (d *fakeDataset) Bands() int                { return len(d.bands) }
func (d *fakeDataset) DataType() raster.DataType { return d.dataType }
func (d *fakeDataset) Projection() string        { return d.projection }
func (d *fakeDataset) GeoTransform() [6]float64  { return d.geoTransform }
func (d *fakeDataset) SetProjection(wkt string) error {
	d.projection = wkt
	return nil
}
func (d *fakeDataset) SetGeoTransform(gt [6]float64) error {
	d.geoTransform = gt
	return nil
}

func (d *fakeDataset) Band(i int) raster.Band {
	band := d.bands[i-1]
	band.readErr = d.readErr
	return band
}

func (d *fakeDataset) BuildOverviews(resampling string, factors []int) error {
	if d.buildOverviewErr != nil {
		return d.buildOverviewErr
	}
	d.resampling = resampling
	d.overviews = append([]int(nil), factors...)
	return nil
}

func (d *fakeDataset) Close() error {
	d.closed = true
	return nil
}

type fakeBand struct {
	data      []uint8
	noData    float64
	hasNoData bool
	metadata  map[string]string
	readErr   error
}

func (b *fakeBand) Read(buf any) error {
	if b.readErr != nil {
		return b.readErr
	}
	copy(buf.([]uint8), b.data)
	return nil
}

func (b *fakeBand) Write(buf any) error {
	b.data = append([]uint8(nil), buf.([]uint8)...)
	return nil
}

func (b *fakeBand) NoDataValue() (float64, bool) { return b.noData, b.hasNoData }

func (b *fakeBand) SetNoDataValue(v float64) error {
	b.noData = v
	b.hasNoData = true
	return nil
}

func (b *fakeBand) SetMetadataItem(name, value, domain string) error {
	b.metadata[domain+":"+name] = value
	return nil
}
