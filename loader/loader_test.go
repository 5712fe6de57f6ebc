package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/eventboard/internal/testutil"
	"github.com/spektr-org/eventboard/registrants"
	"github.com/spektr-org/eventboard/schema"
)

func TestLoad_Workbook(t *testing.T) {
	path := testutil.SampleWorkbook(t, t.TempDir())

	ds, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, ds.Len())

	assert.Equal(t, []string{
		schema.ColChapterGroup, schema.ColEventType, schema.ColPaid,
		schema.ColRegistrants, schema.ColKnownRegistrants, schema.ColEventStartDate,
		"Event Name",
	}, ds.Columns())

	first := ds.At(0)
	require.NotNil(t, first.ChapterGroup)
	assert.Equal(t, "Dallas", *first.ChapterGroup)
	assert.Equal(t, "Webinar", *first.EventType)
	assert.Equal(t, true, *first.Paid)
	assert.Equal(t, 30.0, *first.Registrants)
	assert.Equal(t, 20.0, *first.KnownRegistrants)
	assert.Equal(t, "2025-03-01", first.EventStartDate.Format(registrants.DateLayout))
	assert.Equal(t, "Spring Kickoff", first.Extra["Event Name"])
}

func TestLoad_PaidMapping(t *testing.T) {
	ds, err := Load(testutil.SampleWorkbook(t, t.TempDir()))
	require.NoError(t, err)

	require.NotNil(t, ds.At(0).Paid)
	assert.True(t, *ds.At(0).Paid)
	require.NotNil(t, ds.At(1).Paid)
	assert.False(t, *ds.At(1).Paid)
	assert.Nil(t, ds.At(4).Paid, "values other than Yes/No load as null")
}

func TestLoad_CategoryCellsKeepExactValue(t *testing.T) {
	rows := [][]any{
		{0, "A", "Webinar", "Yes", 1, 1, "2025-01-01", "one"},
		{1, "A ", "Webinar", "Yes ", 2, 2, "2025-01-02", "two"},
	}
	path := testutil.WriteCSV(t, t.TempDir(), "spaces.csv", testutil.Header, rows)

	ds, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, "A", *ds.At(0).ChapterGroup)
	assert.Equal(t, "A ", *ds.At(1).ChapterGroup)
	assert.True(t, *ds.At(0).Paid)
	assert.Nil(t, ds.At(1).Paid, `"Yes " is not a Paid code`)

	groups := registrants.SumBy(ds, schema.ColChapterGroup, schema.ColRegistrants)
	assert.Len(t, groups, 2)
}

func TestLoad_Nulls(t *testing.T) {
	ds, err := Load(testutil.SampleWorkbook(t, t.TempDir()))
	require.NoError(t, err)

	assert.Nil(t, ds.At(2).EventStartDate)
	assert.Nil(t, ds.At(3).ChapterGroup)
	assert.Nil(t, ds.At(4).EventType)
	assert.Nil(t, ds.At(4).KnownRegistrants)
}

func TestLoad_DropsUnnamedColumns(t *testing.T) {
	header := append([]any{}, testutil.Header...)
	header = append(header, "", "Unnamed: extra")
	rows := testutil.SampleRows()
	for i := range rows {
		rows[i] = append(rows[i], "x", "y")
	}
	path := testutil.WriteWorkbook(t, t.TempDir(), "wide.xlsx", header, rows)

	ds, err := Load(path)
	require.NoError(t, err)
	for _, col := range ds.Columns() {
		assert.NotContains(t, col, "Unnamed")
	}
	for _, rec := range ds.Records() {
		for key := range rec.Extra {
			assert.NotContains(t, key, "Unnamed")
		}
	}
}

func TestLoad_CSV(t *testing.T) {
	path := testutil.WriteCSV(t, t.TempDir(), "registrants.csv", testutil.Header, testutil.SampleRows())

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
	assert.NotContains(t, ds.Columns(), "Unnamed: 0")
	assert.Equal(t, 62.0, registrants.TotalScalar(ds, schema.ColRegistrants))
}

func TestLoad_SkipsBlankRows(t *testing.T) {
	rows := testutil.SampleRows()
	rows = append(rows[:2], append([][]any{{nil, nil, nil, nil, nil, nil, nil, nil}}, rows[2:]...)...)
	path := testutil.WriteCSV(t, t.TempDir(), "gaps.csv", testutil.Header, rows)

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.xlsx"))
		require.ErrorIs(t, err, ErrDataLoad)
		var le *LoadError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, "source file not found", le.Reason)
	})

	t.Run("missing columns", func(t *testing.T) {
		path := testutil.WriteWorkbook(t, dir, "partial.xlsx",
			[]any{"Chapter/Club/Group", "Event Type", "Registrants"},
			[][]any{{"Dallas", "Webinar", 3}})
		_, err := Load(path)
		require.ErrorIs(t, err, ErrDataLoad)
		var le *LoadError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, path, le.Path)
		assert.Equal(t, []string{schema.ColEventStartDate, schema.ColPaid, schema.ColKnownRegistrants}, le.MissingColumns)
		assert.Contains(t, err.Error(), "Known Registrants")
	})

	t.Run("unnamed does not satisfy required", func(t *testing.T) {
		header := append([]any{}, testutil.Header...)
		header[3] = "Unnamed: Paid"
		path := testutil.WriteWorkbook(t, dir, "renamed.xlsx", header, testutil.SampleRows())
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrDataLoad)
	})

	t.Run("empty sheet", func(t *testing.T) {
		path := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrDataLoad)
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrDataLoad)
	})

	t.Run("unsupported type", func(t *testing.T) {
		path := filepath.Join(dir, "data.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrDataLoad)
	})
}

func TestNormalizeHeaders(t *testing.T) {
	got := normalizeHeaders([]string{"\ufeffPaid", " Event Type ", "", "Paid"})
	assert.Equal(t, []string{"Paid", "Event Type", "Unnamed: 2", "Paid.1"}, got)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 1234.5, *parseNumber("1,234.5"))
	assert.Nil(t, parseNumber(""))
	assert.Nil(t, parseNumber("n/a"))
}

func TestParseDate(t *testing.T) {
	tests := map[string]string{
		"2025-03-01":          "2025-03-01",
		"3/1/2025":            "2025-03-01",
		"2025-03-01 09:30:00": "2025-03-01",
		"45717":               "2025-03-01",
	}
	for in, want := range tests {
		got := parseDate(in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, got.Format(registrants.DateLayout), in)
	}
	assert.Nil(t, parseDate("someday"))
	assert.Nil(t, parseDate(""))
}

func TestCache_ReusesUntilModified(t *testing.T) {
	dir := t.TempDir()
	path := testutil.SampleWorkbook(t, dir)
	cache := NewCache(nil)
	ctx := context.Background()

	first, err := cache.Load(ctx, path)
	require.NoError(t, err)
	second, err := cache.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, first.Len(), second.Len())

	rows := testutil.SampleRows()[:2]
	testutil.WriteWorkbook(t, dir, "registrants.xlsx", testutil.Header, rows)
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := cache.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, third.Len())
}

func TestCache_Concurrent(t *testing.T) {
	path := testutil.SampleWorkbook(t, t.TempDir())
	cache := NewCache(New(nil))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds, err := cache.Load(context.Background(), path)
			assert.NoError(t, err)
			assert.Equal(t, 5, ds.Len())
		}()
	}
	wg.Wait()
}

func TestCache_Errors(t *testing.T) {
	cache := NewCache(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cache.Load(ctx, "whatever.xlsx")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = cache.Load(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestCache_Invalidate(t *testing.T) {
	dir := t.TempDir()
	path := testutil.SampleWorkbook(t, dir)
	cache := NewCache(nil)

	_, err := cache.Load(context.Background(), path)
	require.NoError(t, err)
	cache.Invalidate(path)

	cache.mu.Lock()
	_, ok := cache.entries[path]
	cache.mu.Unlock()
	assert.False(t, ok)
}
