package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"civic-relevance-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadRows(t *testing.T, doc []byte) *sqlmock.Rows {
	t.Helper()
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(doc, &items))

	rows := sqlmock.NewRows([]string{"payload"})
	for _, item := range items {
		rows.AddRow([]byte(item))
	}
	return rows
}

func TestPostgresStore_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// profiles and issues are queried concurrently
	mock.MatchExpectationsInOrder(false)

	profiles, issues := readFixture(t)
	mock.ExpectQuery("SELECT payload FROM explorer_profiles").WillReturnRows(payloadRows(t, profiles))
	mock.ExpectQuery("SELECT payload FROM explorer_issues").WillReturnRows(payloadRows(t, issues))

	store := NewPostgresStore(db)
	assert.Equal(t, "postgres", store.Name())

	ds, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Profiles, 4)
	assert.Equal(t, "maya", ds.Profiles[0].ID)
	assert.Equal(t, []string{"Park Renovation", "Senior Tech Help"}, ds.IssueTitles())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadEmptyTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT payload FROM explorer_profiles").WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	mock.ExpectQuery("SELECT payload FROM explorer_issues").WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	ds, err := NewPostgresStore(db).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Profiles)
	assert.Empty(t, ds.Issues)
}

func TestPostgresStore_LoadQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT payload FROM explorer_profiles").WillReturnError(errors.New("relation does not exist"))
	mock.ExpectQuery("SELECT payload FROM explorer_issues").WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err = NewPostgresStore(db).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation does not exist")
}

func TestPostgresStore_SaveProfiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	profiles := []*models.Profile{
		{ID: "maya", Name: "Maya"},
		{ID: "jon", Name: "Jon"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO explorer_profiles").
		WithArgs("maya", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO explorer_profiles").
		WithArgs("jon", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewPostgresStore(db).SaveProfiles(context.Background(), profiles))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO explorer_issues").
		WithArgs(0, "Park Renovation", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewPostgresStore(db).SaveIssues(context.Background(), []*models.Issue{{Title: "Park Renovation"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert issue 0")
	assert.NoError(t, mock.ExpectationsWereMet())
}
