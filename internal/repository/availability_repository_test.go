package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityRepositoryListByDoctor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "doctor_id", "weekday", "start_time", "end_time"}).
		AddRow("win-1", "doc-1", "Mon", "09:00", "12:00").
		AddRow("win-2", "doc-1", "Wed", "09:00", "12:00")
	mock.ExpectQuery("SELECT id, doctor_id, weekday, start_time, end_time").
		WithArgs("doc-1").
		WillReturnRows(rows)

	windows, err := repo.ListByDoctor(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, "Mon", windows[0].Weekday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryListByDoctorsEmpty(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	windows, err := repo.ListByDoctors(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestAvailabilityRepositoryListByDoctors(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "doctor_id", "weekday", "start_time", "end_time"}).
		AddRow("win-1", "doc-1", "Mon", "09:00", "12:00").
		AddRow("win-3", "doc-2", "Fri", "14:00", "17:00")
	mock.ExpectQuery("SELECT id, doctor_id, weekday, start_time, end_time").
		WithArgs("doc-1", "doc-2").
		WillReturnRows(rows)

	windows, err := repo.ListByDoctors(context.Background(), []string{"doc-1", "doc-2"})
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
