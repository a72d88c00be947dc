// SQLite sink. Rows are buffered in memory and flushed inside a single
// transaction per batch, one table per row type.

package record

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/structs"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/aqt-sim/aqt-sim/sim"
)

const (
	bufferLoadTable = "buffer_loads"
	absorptionTable = "absorptions"

	sqliteBatchSize = 10000
)

// BufferLoadRow is one buffer-load observation.
type BufferLoadRow struct {
	Rd         int
	Prime      int
	BufferFrom int
	BufferTo   int
	Load       int
}

// AbsorptionRow is one absorbed packet.
type AbsorptionRow struct {
	Rd          int
	PacketID    int
	InjectionRd int
}

type sqliteTable struct {
	entries []any
}

type sqliteWriter struct {
	db         *sql.DB
	tables     map[string]*sqliteTable
	entryCount int
}

// newSQLiteWriter opens a fresh database at dbPath + ".sqlite3" and creates
// the two tables. An empty dbPath gets a generated name. Panics if the file
// already exists or cannot be created; a sink that silently drops rows would
// corrupt the experiment record.
func newSQLiteWriter(dbPath string) *sqliteWriter {
	if dbPath == "" {
		dbPath = "aqt_records_" + xid.New().String()
	}
	filename := dbPath + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}
	logrus.Infof("database created for recording: %s", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w := &sqliteWriter{
		db:     db,
		tables: make(map[string]*sqliteTable),
	}
	w.createTable(bufferLoadTable, BufferLoadRow{})
	w.createTable(absorptionTable, AbsorptionRow{})
	return w
}

func (w *sqliteWriter) createTable(tableName string, sampleEntry any) {
	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	createTableSQL := `CREATE TABLE ` + tableName + ` (` + "\n\t" + fields + "\n" + `);`
	w.mustExecute(createTableSQL)
	w.tables[tableName] = &sqliteTable{}
}

func (w *sqliteWriter) record(rd int, postForward bool, network *sim.BufferNetwork, absorbed []*sim.Packet) {
	prime := 0
	if postForward {
		prime = 1
	}
	for _, e := range network.Edges() {
		w.insert(bufferLoadTable, BufferLoadRow{
			Rd:         rd,
			Prime:      prime,
			BufferFrom: int(e.From),
			BufferTo:   int(e.To),
			Load:       network.Load(e.From, e.To),
		})
	}
	for _, p := range absorbed {
		w.insert(absorptionTable, AbsorptionRow{
			Rd:          rd,
			PacketID:    p.ID(),
			InjectionRd: p.InjectionRound(),
		})
	}
}

func (w *sqliteWriter) insert(tableName string, entry any) {
	table, exists := w.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}
	table.entries = append(table.entries, entry)

	w.entryCount++
	if w.entryCount >= sqliteBatchSize {
		w.flush()
	}
}

func (w *sqliteWriter) flush() {
	if w.entryCount == 0 {
		return
	}

	w.mustExecute("BEGIN TRANSACTION")
	defer w.mustExecute("COMMIT TRANSACTION")

	for tableName, table := range w.tables {
		if len(table.entries) == 0 {
			continue
		}
		stmt := w.prepareStatement(tableName, table.entries[0])
		for _, entry := range table.entries {
			if _, err := stmt.Exec(structs.Values(entry)...); err != nil {
				panic(err)
			}
		}
		table.entries = nil
		stmt.Close()
	}

	w.entryCount = 0
}

func (w *sqliteWriter) close() {
	w.flush()
	if err := w.db.Close(); err != nil {
		logrus.Errorf("couldn't close recording database: %v", err)
	}
}

func (w *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := w.db.Exec(query)
	if err != nil {
		panic(fmt.Errorf("failed to execute %q: %w", query, err))
	}
	return res
}

func (w *sqliteWriter) prepareStatement(tableName string, sampleEntry any) *sql.Stmt {
	placeholders := make([]string, len(structs.Names(sampleEntry)))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	sqlStr := "INSERT INTO " + tableName + " VALUES (" + strings.Join(placeholders, ", ") + ")"

	stmt, err := w.db.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}
	return stmt
}
