package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"LeadersScraper/internal/domain"
)

func record(pairs ...any) *domain.Record {
	r := domain.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1])
	}
	return r
}

func fixtureDataset() *domain.Dataset {
	d := domain.NewDataset()
	d.Append("be", record(
		"first_name", "Philippe",
		"wikipedia_url", "https://en.wikipedia.org/wiki/Philippe_of_Belgium",
		"summary", "King of the Belgians."))
	d.Append("be", record(
		"first_name", "Albert",
		"death_date", nil,
		"summary", ""))
	d.Append("fr", record(
		"first_name", "Jacques",
		"last_name", "Chirac",
		"summary", "President of France.\nServed two terms."))
	return d
}

func TestJSONWriterRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "leaders.json")
	dataset := fixtureDataset()

	require.NoError(t, JSONWriter{}.Write(dataset, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var restored domain.Dataset
	require.NoError(t, json.Unmarshal(raw, &restored))
	require.Equal(t, dataset.Countries(), restored.Countries())
	require.Equal(t, dataset.Len(), restored.Len())

	want, err := json.Marshal(dataset)
	require.NoError(t, err)
	got, err := json.Marshal(&restored)
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("dataset changed through file round-trip (-want +got):\n%s", diff)
	}
}

func TestCSVWriterUnionHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "leaders.csv")
	require.NoError(t, CSVWriter{}.Write(fixtureDataset(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	header := rows[0]
	require.Equal(t, []string{"country", "first_name", "wikipedia_url", "summary", "death_date", "last_name"}, header)

	// Every row has every column; missing fields are empty.
	for _, row := range rows[1:] {
		require.Len(t, row, len(header))
	}
	require.Equal(t, "be", rows[1][0])
	require.Equal(t, "Philippe", rows[1][1])
	require.Equal(t, "", rows[2][2])            // Albert has no wikipedia_url
	require.Equal(t, "", rows[2][4])            // null death_date renders empty
	require.Equal(t, "Chirac", rows[3][5])
	require.Equal(t, "President of France. Served two terms.", rows[3][3])
}

func TestCSVWriterNumbersKeepTextualForm(t *testing.T) {
	t.Parallel()

	d := domain.NewDataset()
	r := domain.NewRecord()
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":"x","birth_year":1960,"summary":""}`), r))
	d.Append("be", r)

	path := filepath.Join(t.TempDir(), "leaders.csv")
	require.NoError(t, CSVWriter{}.Write(d, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "1960", rows[1][2])
}

func TestWriteFailureIsSerializationError(t *testing.T) {
	t.Parallel()

	// Parent "directory" is a regular file, so MkdirAll must fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := JSONWriter{}.Write(fixtureDataset(), filepath.Join(blocker, "out.json"))
	var serErr *domain.SerializationError
	require.ErrorAs(t, err, &serErr)
}

func TestWriteAtomicLeavesNoPartialFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	err := writeAtomic(path, func(io.Writer) error {
		return os.ErrInvalid
	})
	var serErr *domain.SerializationError
	require.ErrorAs(t, err, &serErr)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Empty(t, entries)
}
