package checks

import (
	"regexp"
	"testing"

	"card-catalog/feature/catalog/persist"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func columns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestCheckSchemaNilDB(t *testing.T) {
	report, err := CheckSchema(nil, persist.Models()...)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchemaMatched(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := columns().
		AddRow("code", "varchar(16)", "NO", "PRI", nil, "").
		AddRow("name", "longtext", "YES", "", nil, "").
		AddRow("set_type", "varchar(32)", "YES", "", nil, "").
		AddRow("released_at", "datetime(3)", "YES", "", nil, "").
		AddRow("digital", "tinyint(1)", "YES", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `catalog_sets`")).WillReturnRows(rows)

	report, err := CheckSchema(db, &persist.SetRow{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["catalog_sets"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchemaMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := columns().
		AddRow("printing_id", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("face_id", "varchar(36)", "NO", "PRI", nil, "").
		AddRow("on_back", "tinyint(1)", "NO", "PRI", nil, "").
		AddRow("slot", "varchar(32)", "YES", "", nil, "").
		AddRow("frame", "varchar(16)", "YES", "", nil, "").
		AddRow("flavor_text", "varchar(255)", "YES", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `catalog_printed_faces`")).WillReturnRows(rows)

	report, err := CheckSchema(db, persist.PrintedFaceRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["catalog_printed_faces"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"printed_name"}, tbl.MissingColumns)
	require.Len(t, tbl.TypeMismatches, 1)
	assert.Contains(t, tbl.TypeMismatches[0], "flavor_text: expected text")
}

func TestCheckSchemaMissingTable(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `catalog_cards`")).WillReturnRows(columns())

	report, err := CheckSchema(db, &persist.CardRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "missing", report.Tables["catalog_cards"].Status)
}

func TestCheckSchemaQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `catalog_cards`")).WillReturnError(assert.AnError)

	report, err := CheckSchema(db, &persist.CardRow{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "catalog_cards")
}

func TestGormSetting(t *testing.T) {
	tag := "column:oracle_text;type:text"
	assert.Equal(t, "oracle_text", gormSetting(tag, "column"))
	assert.Equal(t, "text", gormSetting(tag, "type"))
	assert.Empty(t, gormSetting(tag, "size"))
}
