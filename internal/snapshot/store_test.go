package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kutbudev/tagsync/internal/config"
	"github.com/kutbudev/tagsync/internal/models"
)

func sampleGroups() []models.TagGroup {
	bucket := models.Ungrouped()
	bucket.Tags = []models.Tag{{Name: "Loose", Color: "#000", Status: "ACTIVE"}}
	return []models.TagGroup{
		{
			Name:                     "Risk",
			Mode:                     "SINGLE",
			ShortName:                models.StringPtr("R"),
			RestrictToFactSheetTypes: []string{"Application"},
			Tags:                     []models.Tag{{Name: "High", Color: "red", Status: "ACTIVE", Description: models.StringPtr("severe")}},
		},
		bucket,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			store, err := NewFileStore(t.TempDir(), format)
			require.NoError(t, err)

			require.NoError(t, store.Save(context.Background(), "tag-groups", sampleGroups()))
			assert.FileExists(t, store.Path("tag-groups"))

			got, err := store.Load(context.Background(), "tag-groups")
			require.NoError(t, err)
			assert.Equal(t, sampleGroups(), got)
			assert.Equal(t, models.UngroupedBucket, got[1].Kind)
		})
	}
}

func TestFileStoreReadsLegacyBackup(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"name":"__OTHER_TAGS__","tags":[{"name":"x","description":null,"color":"#fff","status":"ACTIVE"}]},
	            {"name":"Risk","mode":"SINGLE","shortName":"","description":"","restrictToFactSheetTypes":[],"tags":[]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tag-groups.json"), []byte(legacy), 0644))

	store, err := NewFileStore(dir, "json")
	require.NoError(t, err)
	got, err := store.Load(context.Background(), "tag-groups")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.False(t, got[0].IsReal())
	assert.True(t, got[1].IsReal())
	assert.Nil(t, got[1].ShortName)
}

func TestFileStoreMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "")
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "tag-groups")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreUnknownFormat(t *testing.T) {
	_, err := NewFileStore(t.TempDir(), "xml")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	s, err := Open(config.SnapshotConfig{Backend: "file", Dir: t.TempDir(), Format: "yaml"})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(config.SnapshotConfig{Backend: "postgres"})
	assert.Error(t, err)

	_, err = Open(config.SnapshotConfig{Backend: "s3"})
	assert.Error(t, err)
}

func newMockDBStore(t *testing.T) (*DBStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error: %v", err)
	}
	return NewDBStore(gdb), mock
}

func TestDBStoreSaveUpserts(t *testing.T) {
	store, mock := newMockDBStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tag_snapshots" .* ON CONFLICT \("name"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), "tag-groups", sampleGroups()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStoreLoad(t *testing.T) {
	store, mock := newMockDBStore(t)

	doc := `[{"name":"Risk","mode":"SINGLE","shortName":null,"description":null,"restrictToFactSheetTypes":[],"tags":[]},
	         {"name":"__OTHER_TAGS__","tags":[{"name":"Loose","color":"#000"}]}]`
	now := time.Now()
	rows := sqlmock.NewRows([]string{"name", "document", "created_at", "updated_at"}).
		AddRow("tag-groups", []byte(doc), now, now)
	mock.ExpectQuery(`SELECT \* FROM "tag_snapshots" WHERE name = \$1`).WillReturnRows(rows)

	got, err := store.Load(context.Background(), "tag-groups")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Risk", got[0].Name)
	assert.Equal(t, models.UngroupedBucket, got[1].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBStoreLoadNotFound(t *testing.T) {
	store, mock := newMockDBStore(t)

	mock.ExpectQuery(`SELECT \* FROM "tag_snapshots"`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "document", "created_at", "updated_at"}))

	_, err := store.Load(context.Background(), "tag-groups")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
