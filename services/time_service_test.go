package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/utils"
)

func int64Ptr(v int64) *int64 { return &v }

func withFixedClock(t *testing.T, at time.Time) {
	t.Helper()
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = time.Now })
}

func TestStopTimerComputesDuration(t *testing.T) {
	mock := newMockDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	withFixedClock(t, now)

	started := now.Add(-90 * time.Minute)
	mock.ExpectQuery(`SELECT (.+) FROM "time_entries" WHERE user_id = (.+) AND end_time IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "task_id", "start_time"}).
			AddRow(5, 1, 2, started))
	mock.ExpectExec(`UPDATE "time_entries" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := NewTimeService().StopTimer(1)
	require.NoError(t, err)
	require.NotNil(t, entry.Duration)
	assert.Equal(t, int64(5400), *entry.Duration)
	require.NotNil(t, entry.EndTime)
	assert.True(t, entry.EndTime.Equal(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStopTimerNoActive(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "time_entries" WHERE user_id = (.+) AND end_time IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewTimeService().StopTimer(1)
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "No active timer", appErr.Message)
}

func TestStartTimerConflictWhileRunning(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(2, 1))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "time_entries" (.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "task_id", "start_time"}).
			AddRow(9, 1, 3, time.Now()))
	mock.ExpectCommit()

	_, err := NewTimeService().StartTimer(1, dto.StartTimerRequest{TaskID: 2})
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "A timer is already running", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartTimerOpensEntry(t *testing.T) {
	mock := newMockDB(t)
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	withFixedClock(t, now)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(2, 1))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "time_entries" (.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "time_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	entry, err := NewTimeService().StartTimer(1, dto.StartTimerRequest{TaskID: 2})
	require.NoError(t, err)
	assert.Equal(t, uint(11), entry.ID)
	assert.True(t, entry.StartTime.Equal(now))
	assert.Nil(t, entry.EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartTimerHiddenTask(t *testing.T) {
	mock := newMockDB(t)

	// task exists but belongs to someone else; presented as not found
	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(2, 99))

	_, err := NewTimeService().StartTimer(1, dto.StartTimerRequest{TaskID: 2})
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestUpdateTimeEntryRejectsRunning(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "time_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "task_id", "start_time", "end_time"}).
			AddRow(5, 1, 2, time.Now(), nil))

	desc := "updated"
	_, err := NewTimeService().UpdateTimeEntry(5, dto.UpdateTimeEntryRequest{Description: &desc}, 1)
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestDeleteTimeEntryOtherUserNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "time_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "task_id", "start_time"}).
			AddRow(5, 99, 2, time.Now()))

	err := NewTimeService().DeleteTimeEntry(5, 1)
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestGetTimeStatsTotals(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT TO_CHAR\(start_time, 'YYYY-MM-DD'\) AS day`).
		WillReturnRows(sqlmock.NewRows([]string{"day", "seconds"}).
			AddRow("2026-03-14", 3600).
			AddRow("2026-03-15", 1800))

	stats, err := NewTimeService().GetTimeStats(1, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Len(t, stats.Days, 2)
	assert.Equal(t, int64(5400), stats.TotalSeconds)
}

func TestCreateManualEntryRejectsReversedRange(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(2, 1))

	_, err := NewTimeService().CreateManualEntry(1, dto.ManualEntryRequest{
		TaskID:    2,
		StartTime: "2026-03-15 10:00:00",
		EndTime:   "2026-03-15 09:00:00",
		Duration:  int64Ptr(3600),
	})
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Contains(t, appErr.Fields, "end_time")
}

func TestCreateManualEntryAcceptsZeroDuration(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(2, 1))
	mock.ExpectQuery(`INSERT INTO "time_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	// start == end is a legitimate zero-second entry
	entry, err := NewTimeService().CreateManualEntry(1, dto.ManualEntryRequest{
		TaskID:    2,
		StartTime: "2026-03-15 09:00:00",
		EndTime:   "2026-03-15 09:00:00",
		Duration:  int64Ptr(0),
	})
	require.NoError(t, err)
	require.NotNil(t, entry.Duration)
	assert.Equal(t, int64(0), *entry.Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}
