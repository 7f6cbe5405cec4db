package repositories

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmanager-pro/database"
	"github.com/taskmanager-pro/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		database.DB = prev
		conn.Close()
	})
	return mock
}

func TestCreateWithOwnerWritesMembershipInSameTransaction(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	repo := NewProjectRepository()
	created, err := repo.CreateWithOwner(models.Project{Name: "Website relaunch", OwnerID: 3})
	require.NoError(t, err)
	assert.Equal(t, uint(7), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithOwnerRollsBackOnMembershipFailure(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "project_members"`).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	repo := NewProjectRepository()
	_, err := repo.CreateWithOwner(models.Project{Name: "Website relaunch", OwnerID: 3})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMemberReportsMiss(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM "project_members"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewProjectRepository()
	removed, err := repo.RemoveMember(7, 99)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRemoveMemberReportsHit(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM "project_members"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewProjectRepository()
	removed, err := repo.RemoveMember(7, 4)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestHasMember(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewProjectRepository()
	member, err := repo.HasMember(7, 4)
	require.NoError(t, err)
	assert.True(t, member)
}
