package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

func sampleRecords(t *testing.T) []*types.Record {
	t.Helper()

	john, err := types.NewRecord("John")
	require.NoError(t, err)
	require.NoError(t, john.AddPhone("1234567890"))
	require.NoError(t, john.AddPhone("0987654321"))
	require.NoError(t, john.SetEmail("john@example.com"))
	require.NoError(t, john.SetAddress("Main St 1, Springfield"))
	require.NoError(t, john.SetBirthday("03.01.1990"))
	john.SetNotes("likes \"quotes\" and\nnewlines")
	john.AddTag("friend")
	john.AddTag("work")
	john.AddTag("friend")

	jane, err := types.NewRecord("Jane")
	require.NoError(t, err)

	return []*types.Record{john, jane}
}

func assertSameRecords(t *testing.T, want, got []*types.Record) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].String(), got[i].String())
		assert.Equal(t, want[i].Phones(), got[i].Phones())
		assert.Equal(t, want[i].Tags(), got[i].Tags())
		assert.Equal(t, want[i].Notes(), got[i].Notes())
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	files := map[string]string{
		types.FormatJSONL:  "book.jsonl",
		types.FormatYAML:   "book.yaml",
		types.FormatSQLite: "book.db",
	}

	for format, name := range files {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			records := sampleRecords(t)

			require.NoError(t, Save(path, format, records))
			got, err := Load(path, format)
			require.NoError(t, err)
			assertSameRecords(t, records, got)
		})
	}
}

func TestSaveOverwritesPriorContent(t *testing.T) {
	for _, format := range []string{types.FormatJSONL, types.FormatYAML, types.FormatSQLite} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "book")
			records := sampleRecords(t)

			require.NoError(t, Save(path, format, records))
			require.NoError(t, Save(path, format, records[1:]))

			got, err := Load(path, format)
			require.NoError(t, err)
			assertSameRecords(t, records[1:], got)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files should remain")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	for _, format := range []string{types.FormatJSONL, types.FormatYAML, types.FormatSQLite} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent")
			_, err := Load(path, format)
			assert.ErrorIs(t, err, fs.ErrNotExist)

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "load must not create the file")
		})
	}
}

func TestJSONLLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.jsonl")
	require.NoError(t, Save(path, types.FormatJSONL, sampleRecords(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header plus one line per contact")
	assert.Equal(t, `{"format":"contacts","version":1}`, lines[0])
	assert.Contains(t, lines[1], `{"tag":"name","value":"John"}`)
	assert.Contains(t, lines[2], `"fields":[{"tag":"name","value":"Jane"}]`)
}

func TestJSONLRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "empty file",
			content: "",
			wantErr: types.ErrMalformedSnapshot,
		},
		{
			name:    "missing header",
			content: `{"id":"x","fields":[{"tag":"name","value":"John"}]}` + "\n",
			wantErr: types.ErrMalformedSnapshot,
		},
		{
			name:    "future version",
			content: `{"format":"contacts","version":2}` + "\n",
			wantErr: types.ErrUnsupportedVersion,
		},
		{
			name:    "garbage line",
			content: `{"format":"contacts","version":1}` + "\nnot json\n",
			wantErr: types.ErrMalformedSnapshot,
		},
		{
			name: "invalid phone",
			content: `{"format":"contacts","version":1}` + "\n" +
				`{"id":"x","fields":[{"tag":"name","value":"John"},{"tag":"phone","value":"12x"}]}` + "\n",
			wantErr: types.ErrMalformedSnapshot,
		},
		{
			name: "name not first",
			content: `{"format":"contacts","version":1}` + "\n" +
				`{"id":"x","fields":[{"tag":"phone","value":"1234567890"}]}` + "\n",
			wantErr: types.ErrMalformedSnapshot,
		},
		{
			name: "unknown tag",
			content: `{"format":"contacts","version":1}` + "\n" +
				`{"id":"x","fields":[{"tag":"name","value":"John"},{"tag":"fax","value":"1"}]}` + "\n",
			wantErr: types.ErrMalformedSnapshot,
		},
		{
			name: "duplicate id",
			content: `{"format":"contacts","version":1}` + "\n" +
				`{"id":"x","fields":[{"tag":"name","value":"John"}]}` + "\n" +
				`{"id":"x","fields":[{"tag":"name","value":"Jane"}]}` + "\n",
			wantErr: types.ErrMalformedSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "book.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path, types.FormatJSONL)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJSONLSkipsBlankLines(t *testing.T) {
	content := "\n" + `{"format":"contacts","version":1}` + "\n\n" +
		`{"id":"abc","fields":[{"tag":"name","value":"John"},{"tag":"tag","value":"friend"}]}` + "\n\n"
	path := filepath.Join(t.TempDir(), "book.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := Load(path, types.FormatJSONL)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].ID)
	assert.Equal(t, []string{"friend"}, got[0].Tags())
}

func TestYAMLRejectsUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 7\ncontacts: []\n"), 0o644))

	_, err := Load(path, types.FormatYAML)
	assert.ErrorIs(t, err, types.ErrUnsupportedVersion)
}

func TestYAMLRejectsDuplicateIDs(t *testing.T) {
	content := `version: 1
contacts:
  - id: same
    fields:
      - {tag: name, value: John}
  - id: same
    fields:
      - {tag: name, value: Jane}
`
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path, types.FormatYAML)
	assert.ErrorIs(t, err, types.ErrMalformedSnapshot)
}

func TestDecodeKeepsDistinctIDs(t *testing.T) {
	records := sampleRecords(t)
	got, err := Decode(Encode(records))
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i].ID, got[i].ID)
	}
}

func TestUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.bin")
	assert.ErrorIs(t, Save(path, "pickle", nil), types.ErrFormatUnknown)
	_, err := Load(path, "pickle")
	assert.ErrorIs(t, err, types.ErrFormatUnknown)
}

func TestSaveIntoMissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "book.jsonl")
	err := Save(path, types.FormatJSONL, sampleRecords(t))
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrFormatUnknown)
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		fallback string
		want     string
	}{
		{path: "book.jsonl", want: types.FormatJSONL},
		{path: "book.JSON", want: types.FormatJSONL},
		{path: "book.yml", want: types.FormatYAML},
		{path: "dir/book.yaml", fallback: types.FormatSQLite, want: types.FormatYAML},
		{path: "book.sqlite3", want: types.FormatSQLite},
		{path: "book.db", fallback: types.FormatYAML, want: types.FormatSQLite},
		{path: "book", want: types.FormatJSONL},
		{path: "book.pkl", fallback: types.FormatYAML, want: types.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForPath(tt.path, tt.fallback))
		})
	}
}
