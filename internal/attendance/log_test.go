package attendance_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loginattendance/internal/attendance"
)

func TestNewRecord_FormatsTimestamp(t *testing.T) {
	at := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	rec := attendance.NewRecord("admin", at, "")

	assert.Equal(t, "admin", rec.Username)
	assert.Equal(t, "1/1/2024, 9:00:00 AM", rec.Timestamp)
	assert.Equal(t, at, rec.At)
	assert.NotEmpty(t, rec.ID)
}

func TestNewRecord_CustomLayout(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	rec := attendance.NewRecord("student1", at, time.RFC3339)

	assert.Equal(t, "2024-03-05T14:07:09Z", rec.Timestamp)
}

func TestLog_AppendKeepsOrderAndDuplicates(t *testing.T) {
	log := attendance.NewLog()
	assert.True(t, log.IsEmpty())

	log.Append(attendance.Record{ID: "1", Username: "admin"})
	log.Append(attendance.Record{ID: "2", Username: "student2"})
	log.Append(attendance.Record{ID: "3", Username: "admin"})

	all := log.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"admin", "student2", "admin"}, []string{all[0].Username, all[1].Username, all[2].Username})
	assert.False(t, log.IsEmpty())
	assert.Equal(t, 3, log.Len())
}

func TestLog_AllReturnsSnapshot(t *testing.T) {
	log := attendance.NewLog()
	log.Append(attendance.Record{Username: "admin"})

	snapshot := log.All()
	snapshot[0].Username = "mutated"

	all := log.All()
	require.Len(t, all, 1)
	assert.Equal(t, "admin", all[0].Username)
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := attendance.NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(attendance.Record{Username: "admin"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, log.Len())
}
