package tracing

import (
	"database/sql"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/scopetrace/timing"
)

// ScopeQuery is used to define the records to be queried. Not all the fields
// have to be set. If a field is empty, the criteria is ignored.
type ScopeQuery struct {
	// Use Name to select all the records of one scope name.
	Name string

	// Use ThreadID to select all the records captured on one goroutine.
	ThreadID uint64
	// EnableThreadID turns the ThreadID criteria on.
	EnableThreadID bool

	// Enable time range selection.
	EnableTimeRange bool

	// Use StartTime and EndTime to select records that overlap with the
	// given time range.
	StartTime, EndTime timing.TimeInUS
}

// SQLiteTraceReader can query scope records from a trace database written by
// a SQLiteTraceWriter.
type SQLiteTraceReader struct {
	*sql.DB

	filename string
}

// NewSQLiteTraceReader creates a new SQLiteTraceReader.
func NewSQLiteTraceReader(filename string) *SQLiteTraceReader {
	return &SQLiteTraceReader{filename: filename}
}

// Init establishes a connection to the database.
func (r *SQLiteTraceReader) Init() {
	db, err := sql.Open("sqlite3", r.filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
}

// ListScopeNames returns all the distinct scope names in the trace.
func (r *SQLiteTraceReader) ListScopeNames() []string {
	var names []string

	rows, err := r.Query("SELECT DISTINCT name FROM trace")
	if err != nil {
		panic(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			panic(err)
		}
	}()

	for rows.Next() {
		var name string
		err := rows.Scan(&name)
		if err != nil {
			panic(err)
		}
		names = append(names, name)
	}

	return names
}

// ListRecords returns the records in the trace that match the query.
func (r *SQLiteTraceReader) ListRecords(query ScopeQuery) []ScopeRecord {
	sqlStr := r.prepareScopeQueryStr(query)

	rows, err := r.Query(sqlStr)
	if err != nil {
		panic(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			panic(err)
		}
	}()

	records := []ScopeRecord{}
	for rows.Next() {
		rec := ScopeRecord{}

		err := rows.Scan(
			&rec.Name,
			&rec.Start,
			&rec.End,
			&rec.ThreadID,
		)
		if err != nil {
			panic(err)
		}

		records = append(records, rec)
	}

	return records
}

func (r *SQLiteTraceReader) prepareScopeQueryStr(query ScopeQuery) string {
	sqlStr := `
		SELECT
			name,
			start_time,
			end_time,
			thread_id
		FROM trace
		WHERE 1=1
	`

	if query.Name != "" {
		sqlStr += fmt.Sprintf("AND name = '%s'\n", query.Name)
	}

	if query.EnableThreadID {
		sqlStr += fmt.Sprintf("AND thread_id = %d\n", query.ThreadID)
	}

	if query.EnableTimeRange {
		sqlStr += fmt.Sprintf("AND end_time > %d\n", query.StartTime)
		sqlStr += fmt.Sprintf("AND start_time < %d\n", query.EndTime)
	}

	sqlStr += "ORDER BY start_time\n"

	return sqlStr
}
