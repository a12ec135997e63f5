package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oduyemi/preschool-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestProgramRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(int64(1), "Preschool", "Ages 3 to 5", time.Now(), time.Now()).
		AddRow(int64(2), "Daycare", "Ages 1 to 3", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, name, description, created_at, updated_at FROM programs ORDER BY name ASC").
		WillReturnRows(rows)

	programs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, programs, 2)
	assert.Equal(t, "Preschool", programs[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepositoryExistsByName(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM programs WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("preschool").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByName(context.Background(), "preschool", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepositoryExistsByNameMiss(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM programs WHERE LOWER\(name\) = LOWER\(\$1\) AND id <> \$2`).
		WithArgs("preschool", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByName(context.Background(), "preschool", 5)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	mock.ExpectQuery("INSERT INTO programs").
		WithArgs("Preschool", "Ages 3 to 5", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	program := &models.Program{Name: "Preschool", Description: "Ages 3 to 5"}
	err := repo.Create(context.Background(), program)
	require.NoError(t, err)
	assert.Equal(t, int64(7), program.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	mock.ExpectExec("DELETE FROM programs WHERE id =").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
