package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"civic-relevance-workers/internal/dataset"
	"civic-relevance-workers/internal/dataset/datasettest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) (profiles, issues string) {
	t.Helper()
	dir := t.TempDir()
	profiles = filepath.Join(dir, "profiles.json")
	issues = filepath.Join(dir, "issues.json")
	require.NoError(t, os.WriteFile(profiles, datasettest.ProfilesJSON, 0o644))
	require.NoError(t, os.WriteFile(issues, datasettest.IssuesJSON, 0o644))
	return profiles, issues
}

func legacyIn(t *testing.T, path string) int {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	profiles, err := dataset.DecodeProfiles(raw)
	require.NoError(t, err)
	return dataset.CountLegacy(profiles)
}

func TestRunMigrate(t *testing.T) {
	t.Run("rewrites in place and is idempotent", func(t *testing.T) {
		profiles, _ := writeFixture(t)
		var out bytes.Buffer

		require.NoError(t, runMigrate(&out, migrateOptions{in: profiles, seed: 42}))
		assert.Contains(t, out.String(), "Migrated 2 resources across 4 profiles")
		assert.Equal(t, 0, legacyIn(t, profiles))

		out.Reset()
		require.NoError(t, runMigrate(&out, migrateOptions{in: profiles, seed: 42}))
		assert.Contains(t, out.String(), "nothing to do")
	})

	t.Run("dry run leaves the file alone", func(t *testing.T) {
		profiles, _ := writeFixture(t)
		var out bytes.Buffer

		require.NoError(t, runMigrate(&out, migrateOptions{in: profiles, dryRun: true}))
		assert.Equal(t, "2 resources would be migrated across 4 profiles\n", out.String())
		assert.Equal(t, 2, legacyIn(t, profiles))
	})

	t.Run("writes to a separate output", func(t *testing.T) {
		profiles, _ := writeFixture(t)
		target := filepath.Join(t.TempDir(), "migrated.json")

		require.NoError(t, runMigrate(&bytes.Buffer{}, migrateOptions{in: profiles, out: target, seed: 1}))
		assert.Equal(t, 2, legacyIn(t, profiles))
		assert.Equal(t, 0, legacyIn(t, target))
	})

	t.Run("missing input", func(t *testing.T) {
		err := runMigrate(&bytes.Buffer{}, migrateOptions{in: "missing.json"})
		assert.ErrorContains(t, err, "read profiles")
	})
}

func TestRunValidate(t *testing.T) {
	profiles, issues := writeFixture(t)
	var out bytes.Buffer

	require.NoError(t, runValidate(&out, profiles, issues))
	assert.Contains(t, out.String(), "4 profiles, 2 issues, 2 legacy resources")
	assert.Contains(t, out.String(), "Park Renovation")
	assert.Contains(t, out.String(), "Senior Tech Help")

	require.NoError(t, os.WriteFile(issues, []byte(`[{"title": 3}]`), 0o644))
	assert.ErrorIs(t, runValidate(&bytes.Buffer{}, profiles, issues), dataset.ErrInvalidDocument)
}

func TestRunSeed(t *testing.T) {
	profiles, issues := writeFixture(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for i := 0; i < 4; i++ {
		mock.ExpectExec("INSERT INTO explorer_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
	mock.ExpectBegin()
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO explorer_issues").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	var out bytes.Buffer
	err = runSeed(context.Background(), &out, dataset.NewFileSource(profiles, issues), dataset.NewPostgresStore(db))
	require.NoError(t, err)
	assert.Equal(t, "Seeded 4 profiles and 2 issues from file\n", out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
