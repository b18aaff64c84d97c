package export

import (
	"errors"
	"strings"

	"loginattendance/internal/attendance"
)

const (
	// Filename is the name offered to the browser for downloads.
	Filename = "attendance_summary.csv"
	// ContentType is the MIME type of the export.
	ContentType = "text/csv"
	// Header is the first line of every export.
	Header = "Username,Login Time"
)

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no attendance records found")

// CSV serializes records as `username,timestamp` lines under Header.
// Fields are written verbatim; usernames come from the fixed account list.
func CSV(records []attendance.Record) ([]byte, string, error) {
	if len(records) == 0 {
		return nil, "", ErrNoRecords
	}
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, rec := range records {
		b.WriteString(rec.Username)
		b.WriteByte(',')
		b.WriteString(rec.Timestamp)
		b.WriteByte('\n')
	}
	return []byte(b.String()), Filename, nil
}
