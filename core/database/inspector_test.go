package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_farmers (id INTEGER PRIMARY KEY, farmer_id TEXT, nrc_hash TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_farmers")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["farmer_id"])
	assert.Equal(t, "text", colMap["nrc_hash"])

	// PRAGMA table_info returns an empty result for unknown tables.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_NilDB(t *testing.T) {
	_, err := GetTableColumns(nil, "farmers")
	assert.Error(t, err)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE farmers (id INTEGER PRIMARY KEY, farmer_id TEXT)").Error)

	missing, err := MissingColumns(db, "farmers", []string{"id", "farmer_id", "nrc_hash", "temp_id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"nrc_hash", "temp_id"}, missing)
}
