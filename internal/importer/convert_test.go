package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleImport = `{
	"people": [
		{"id": "p1", "name": "Ada", "email": "ada@example.com", "studio": "Denver", "manager": "Kim", "scheduled_hours": 40},
		{"id": "p2", "name": "Bo", "email": "bo@example.com", "scheduled_hours": "32"}
	],
	"allocations": [
		{"person_id": "p1", "week": "2025-06-11", "proj_id": "P-100", "ra_hours": "20"},
		{"person_id": "p1", "week": "2025-06-09", "project_number": "0000-0000-0PTO", "hours": 8},
		{"email": "BO@example.com", "week": "2025-06-09", "project_number": "P-100", "hours": 16, "id": "keep-me"},
		{"person_id": "p1", "week": "2025-06-16", "project_number": "P-200", "hours": 40}
	]
}`

func TestConvert_GroupsByPersonAndWeek(t *testing.T) {
	schema, err := ParseImportSchema([]byte(sampleImport))
	require.NoError(t, err)
	require.Empty(t, ValidateImportSchema(schema))

	batch, err := Convert(schema)
	require.NoError(t, err)

	require.Len(t, batch.People, 2)
	assert.Equal(t, "Denver", batch.People[0].Studio)
	assert.Equal(t, 32.0, batch.People[1].ScheduledHours)

	require.Len(t, batch.Weeks, 3)
	first := batch.Weeks[0]
	assert.Equal(t, "p1", first.PersonID)
	assert.Equal(t, "2025-06-09", first.WeekStart.Format("2006-01-02"))
	require.Len(t, first.Rows, 2, "mid-week dates normalize to the same Monday")
	for _, r := range first.Rows {
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "p1", r.PersonID)
		assert.Equal(t, first.WeekStart, r.WeekStart)
	}

	second := batch.Weeks[1]
	assert.Equal(t, "p2", second.PersonID)
	require.Len(t, second.Rows, 1)
	assert.Equal(t, "keep-me", second.Rows[0].ID)

	assert.Equal(t, "2025-06-16", batch.Weeks[2].WeekStart.Format("2006-01-02"))
}

func TestConvert_UnknownEmail(t *testing.T) {
	schema := &ImportSchema{Allocations: []AllocationImport{{Email: "x@example.com", Week: "2025-06-09"}}}
	_, err := Convert(schema)
	assert.Error(t, err)
}

func TestLoadImportSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleImport), 0o600))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	assert.Len(t, schema.People, 2)
	assert.Len(t, schema.Allocations, 4)
	assert.Equal(t, 20.0, schema.Allocations[0].RaHours.Float())
	assert.False(t, schema.Allocations[0].Hours.IsSet())
}

func TestLoadImportSchema_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"people": [`), 0o600))

	_, err := LoadImportSchema(path)
	assert.ErrorContains(t, err, "parsing import file")
}
