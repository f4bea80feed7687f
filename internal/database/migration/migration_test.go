package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"cvdoc/internal/templates"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssets() ([]templates.Asset, error) {
	return []templates.Asset{{
		ID:           "tiny",
		Name:         "Tiny",
		Category:     "test",
		TemplateData: json.RawMessage(`{"attrs":{"width":100,"height":100},"className":"Stage","children":[]}`),
	}}, nil
}

func withAssets(t *testing.T, fn func() ([]templates.Asset, error)) {
	t.Helper()
	orig := loadAssets
	loadAssets = fn
	t.Cleanup(func() { loadAssets = orig })
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestEnsureMigrated_FreshDatabase(t *testing.T) {
	withAssets(t, testAssets)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for range steps {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("INSERT INTO templates").
		WithArgs("tiny", "Tiny", "", "test", []byte(`[]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	var logs bytes.Buffer
	err = EnsureMigrated(context.Background(), db, newLogger(&logs), "db.local")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, logs.String(), `"event":"db_migration_step"`)
	assert.Contains(t, logs.String(), `"component":"database"`)
	assert.Contains(t, logs.String(), `"templates_seeded":1`)
}

func TestEnsureMigrated_ExistingSchemaStillSeeds(t *testing.T) {
	withAssets(t, testAssets)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO templates").WillReturnResult(sqlmock.NewResult(0, 1))

	var logs bytes.Buffer
	err = EnsureMigrated(context.Background(), db, newLogger(&logs), "db.local")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, logs.String(), `"event":"db_migration_skip"`)
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	withAssets(t, testAssets)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS templates").
		WillReturnError(errors.New("permission denied"))

	var logs bytes.Buffer
	err = EnsureMigrated(context.Background(), db, newLogger(&logs), "db.local")

	assert.EqualError(t, err, "migration step create_table_templates failed: permission denied")
	assert.Contains(t, logs.String(), `"status":"error"`)
}

func TestEnsureMigrated_BrokenAsset(t *testing.T) {
	withAssets(t, func() ([]templates.Asset, error) {
		return []templates.Asset{{ID: "bad", TemplateData: json.RawMessage(`{"className":"Circle"}`)}}, nil
	})
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	var logs bytes.Buffer
	err = EnsureMigrated(context.Background(), db, newLogger(&logs), "db.local")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_EmbeddedAssets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assets, err := templates.LoadAssets()
	require.NoError(t, err)
	for _, a := range assets {
		mock.ExpectExec("INSERT INTO templates").
			WithArgs(a.ID, a.Name, a.Description, a.Category, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	n, err := seed(context.Background(), db)

	require.NoError(t, err)
	assert.Equal(t, len(assets), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
