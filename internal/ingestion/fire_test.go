package ingestion

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFireCSV(t *testing.T) {
	t.Run("drops row with non-numeric brightness", func(t *testing.T) {
		csv := "latitude,longitude,brightness\n" +
			"-10.5,120.25,310.2\n" +
			"34.0,-118.1,abc\n" +
			"5.5,20.0,299.9\n"

		series, err := ParseFireCSV(strings.NewReader(csv))
		require.NoError(t, err)

		assert.Equal(t, 2, series.Len())
		assert.Equal(t, []float64{-10.5, 5.5}, series.Lats)
		assert.Equal(t, []float64{120.25, 20.0}, series.Lons)
		assert.Equal(t, []float64{310.2, 299.9}, series.Brightness)
		assert.Equal(t, 1, series.Skipped)
	})

	t.Run("columns resolved by name", func(t *testing.T) {
		csv := "acq_date,brightness,confidence,longitude,latitude\n" +
			"2019-05-03,305.1,80,101.5,-2.25\n"

		series, err := ParseFireCSV(strings.NewReader(csv))
		require.NoError(t, err)

		assert.Equal(t, []float64{-2.25}, series.Lats)
		assert.Equal(t, []float64{101.5}, series.Lons)
		assert.Equal(t, []float64{305.1}, series.Brightness)
	})

	t.Run("short and blank rows are skipped", func(t *testing.T) {
		csv := "latitude,longitude,brightness\n" +
			"1,2\n" +
			"\n" +
			" 3 , 4 , 5 \n"

		series, err := ParseFireCSV(strings.NewReader(csv))
		require.NoError(t, err)

		assert.Equal(t, 1, series.Len())
		assert.Equal(t, []float64{3}, series.Lats)
		assert.Equal(t, 1, series.Skipped)
	})

	t.Run("byte order mark on header", func(t *testing.T) {
		csv := "\ufefflatitude,longitude,brightness\n1,2,3\n"

		series, err := ParseFireCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 1, series.Len())
	})
}

func TestParseFireCSV_ParallelSequencesStayAligned(t *testing.T) {
	rows := []string{
		"1,2,3", "x,2,3", "1,y,3", "1,2,z", "4,5,6", ",,", "7,8,9.5", "NaNx,1,1",
	}
	csv := "latitude,longitude,brightness\n" + strings.Join(rows, "\n") + "\n"

	series, err := ParseFireCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, series.Len())
	assert.Len(t, series.Lons, series.Len())
	assert.Len(t, series.Brightness, series.Len())
	assert.Equal(t, len(rows)-3, series.Skipped)
	assert.Equal(t, []float64{1, 4, 7}, series.Lats)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{" 2.5 ", 2.5, true},
		{"1_000", 1000, true},
		{"1_000.2_5", 1000.25, true},
		{"1e400", math.Inf(1), true},
		{"-1e400", math.Inf(-1), true},
		{"1e-400", 0, true},
		{"Infinity", math.Inf(1), true},
		{"-inf", math.Inf(-1), true},
		{"1__000", 0, false},
		{"_1", 0, false},
		{"1_", 0, false},
		{"1_e5", 0, false},
		{"0x1p-2", 0, false},
		{"-0X10", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	v, ok := parseNumber("NaN")
	assert.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestParseFireCSV_OverflowingBrightnessIsKept(t *testing.T) {
	series, err := ParseFireCSV(strings.NewReader("latitude,longitude,brightness\n1,2,1e400\n3,4,0x10\n"))
	require.NoError(t, err)

	assert.Equal(t, []float64{math.Inf(1)}, series.Brightness)
	assert.Equal(t, 1, series.Skipped)
}

func TestParseFireCSV_MissingColumn(t *testing.T) {
	csv := "latitude,longitude,frp\n1,2,3\n"

	series, err := ParseFireCSV(strings.NewReader(csv))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "brightness")
	assert.True(t, series.Empty())
	assert.Empty(t, series.Lats)
	assert.Empty(t, series.Lons)
	assert.Empty(t, series.Brightness)
}

func TestParseFireCSV_EmptyInput(t *testing.T) {
	_, err := ParseFireCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrSchema)
}

func TestParseFireCSV_NoValidRows(t *testing.T) {
	csv := "latitude,longitude,brightness\nn/a,n/a,n/a\n"

	series, err := ParseFireCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrEmpty)
	assert.True(t, series.Empty())
	assert.Equal(t, 1, series.Skipped)
}

func TestFireLoader_Load_WritesCacheAndParses(t *testing.T) {
	body := "latitude,longitude,brightness\n1.5,2.5,300\n3.5,4.5,310\nbad,4.5,310\n"
	tr := &fakeTransport{body: []byte(body)}
	cachePath := filepath.Join(t.TempDir(), "world_fires_1_day.csv")

	// stale content must be overwritten
	require.NoError(t, os.WriteFile(cachePath, []byte("old,junk\n"), 0o644))

	loader := NewFireLoader(tr, "http://fires.test/world_fires_1_day.csv", cachePath)
	series, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"http://fires.test/world_fires_1_day.csv"}, tr.urls)
	assert.Equal(t, 2, series.Len())
	assert.Equal(t, []float64{1.5, 3.5}, series.Lats)

	cached, err := os.ReadFile(cachePath)
	require.NoError(t, err)
	assert.Equal(t, body, string(cached))
}

func TestFireLoader_Load_TransportFailure(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "fires.csv")
	loader := NewFireLoader(&fakeTransport{err: errUnreachable}, "http://fires.test", cachePath)

	series, err := loader.Load(context.Background())

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, errUnreachable)
	assert.True(t, series.Empty())
	assert.NoFileExists(t, cachePath)
}

func TestFireLoader_Load_MissingColumn(t *testing.T) {
	tr := &fakeTransport{body: []byte("lat,lon,brightness\n1,2,3\n")}
	loader := NewFireLoader(tr, "http://fires.test", filepath.Join(t.TempDir(), "fires.csv"))

	series, err := loader.Load(context.Background())

	assert.ErrorIs(t, err, ErrSchema)
	assert.Equal(t, 0, series.Len())
}

func TestFireLoader_Load_UnwritableCache(t *testing.T) {
	tr := &fakeTransport{body: []byte("latitude,longitude,brightness\n1,2,3\n")}
	cachePath := filepath.Join(t.TempDir(), "missing-dir", "fires.csv")
	loader := NewFireLoader(tr, "http://fires.test", cachePath)

	series, err := loader.Load(context.Background())

	assert.ErrorIs(t, err, ErrIO)
	assert.True(t, series.Empty())
}
