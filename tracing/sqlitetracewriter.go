package tracing

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter is a tracer that writes scope records to a SQLite
// database. It is safe for concurrent use, so it can be attached to a
// session that completes scopes on many goroutines.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName         string
	lock           sync.Mutex
	recordsToWrite []ScopeRecord
	batchSize      int
}

// NewSQLiteTraceWriter creates a new SQLiteTraceWriter.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 100000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init establishes a connection to the database and creates the trace table.
func (t *SQLiteTraceWriter) Init() {
	t.createDatabase()
	t.createTable()
	t.prepareStatement()
}

// WriteRecord buffers a record for the database.
func (t *SQLiteTraceWriter) WriteRecord(r ScopeRecord) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.recordsToWrite = append(t.recordsToWrite, r)
	if len(t.recordsToWrite) >= t.batchSize {
		t.flush()
	}
}

// Flush writes all the buffered records to the database in one transaction.
func (t *SQLiteTraceWriter) Flush() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.flush()
}

func (t *SQLiteTraceWriter) flush() {
	if len(t.recordsToWrite) == 0 {
		return
	}

	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for _, r := range t.recordsToWrite {
		_, err := t.statement.Exec(
			r.Name,
			r.Start,
			r.End,
			r.ThreadID,
		)
		if err != nil {
			panic(err)
		}
	}

	t.recordsToWrite = nil
}

func (t *SQLiteTraceWriter) createDatabase() {
	if t.dbName == "" {
		t.dbName = "scopetrace_" + xid.New().String()
	}

	filename := t.dbName + ".sqlite3"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Trace is collected in database: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

func (t *SQLiteTraceWriter) createTable() {
	t.mustExecute(`
		create table trace
		(
			name      varchar(200) not null default '',
			start_time integer     not null,
			end_time   integer     not null,
			thread_id  integer     not null default 0
		);
	`)

	t.mustExecute(`
		create index trace_name_index
			on trace (name);
	`)

	t.mustExecute(`
		create index trace_start_time_index
			on trace (start_time);
	`)

	t.mustExecute(`
		create index trace_end_time_index
			on trace (end_time);
	`)
}

func (t *SQLiteTraceWriter) prepareStatement() {
	stmt, err := t.Prepare(
		`INSERT INTO trace VALUES (?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}

	t.statement = stmt
}

func (t *SQLiteTraceWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
