package record

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/aqt-sim/aqt-sim/sim"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestBufferLoadCSV_WritesOneRowPerBufferPerObservation(t *testing.T) {
	// GIVEN a 2-buffer path with one packet on edge (0, 1)
	network := sim.ConstructPath(2)
	factory := sim.NewPacketFactory()
	network.Push(factory.Create(sim.PacketPath{0, 1, 2}, 0, 0), 0, 1)

	outputFile := filepath.Join(t.TempDir(), "buffer_loads.csv")
	recorder := NewBufferLoadCSV(outputFile)

	// WHEN both observations of a round are recorded and the sink is closed
	recorder.Record(1, false, network, nil)
	recorder.Record(1, true, network, []*sim.Packet{})
	recorder.Close()

	// THEN the file holds the header and one row per buffer per observation,
	// in canonical edge order, with prime marking the post-forward rows
	want := []string{
		"rd,prime,buffer_from,buffer_to,load",
		"1,0,0,1,1",
		"1,0,1,2,0",
		"1,1,0,1,1",
		"1,1,1,2,0",
	}
	got := readLines(t, outputFile)
	if len(got) != len(want) {
		t.Fatalf("lines: got %d, want %d\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAbsorptionCSV_WritesOneRowPerAbsorbedPacket(t *testing.T) {
	// GIVEN two packets absorbed in round 7
	network := sim.ConstructPath(2)
	factory := sim.NewPacketFactory()
	p0 := factory.Create(sim.PacketPath{0, 1, 2}, 3, 0)
	p1 := factory.Create(sim.PacketPath{0, 1, 2}, 5, 0)

	outputFile := filepath.Join(t.TempDir(), "absorptions.csv")
	recorder := NewAbsorptionCSV(outputFile)

	// WHEN the round is recorded and the sink is closed
	recorder.Record(7, false, network, nil)
	recorder.Record(7, true, network, []*sim.Packet{p0, p1})
	recorder.Close()

	// THEN only the post-forward observation produced rows
	want := []string{
		"rd,packet_id,injection_rd",
		"7,0,3",
		"7,1,5",
	}
	got := readLines(t, outputFile)
	if len(got) != len(want) {
		t.Fatalf("lines: got %d, want %d\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCSVWriter_AppendsAcrossBufferFlushes(t *testing.T) {
	// GIVEN a CSV sink whose in-memory buffer holds only two lines
	network := sim.ConstructPath(1)
	outputFile := filepath.Join(t.TempDir(), "buffer_loads.csv")
	recorder := NewBufferLoadCSV(outputFile)
	recorder.csv.lineLimit = 2

	// WHEN more observations than the limit are recorded
	for rd := 1; rd <= 5; rd++ {
		recorder.Record(rd, false, network, nil)
	}
	recorder.Close()

	// THEN every row survived the intermediate flushes, in order
	got := readLines(t, outputFile)
	if len(got) != 6 {
		t.Fatalf("lines: got %d, want 6\n%s", len(got), strings.Join(got, "\n"))
	}
	for rd := 1; rd <= 5; rd++ {
		if !strings.HasPrefix(got[rd], strconv.Itoa(rd)+",") {
			t.Errorf("line %d: got %q, want a round-%d row", rd, got[rd], rd)
		}
	}
}

func TestSQLite_RoundTripsLoadsAndAbsorptions(t *testing.T) {
	// GIVEN a 2-buffer path with one packet, recorded for two rounds
	network := sim.ConstructPath(2)
	factory := sim.NewPacketFactory()
	p := factory.Create(sim.PacketPath{0, 1, 2}, 1, 0)
	network.Push(p, 0, 1)

	dbPath := filepath.Join(t.TempDir(), "records")
	recorder := NewSQLite(dbPath)

	// WHEN observations and one absorption are recorded and the sink closed
	recorder.Record(1, false, network, nil)
	recorder.Record(1, true, network, []*sim.Packet{p})
	recorder.Record(2, false, network, nil)
	recorder.Close()

	// THEN the database holds one buffer-load row per edge per observation
	// and the absorbed packet's row
	db, err := sql.Open("sqlite3", dbPath+".sqlite3")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	var loadRows int
	if err := db.QueryRow("SELECT COUNT(*) FROM buffer_loads").Scan(&loadRows); err != nil {
		t.Fatalf("counting buffer loads: %v", err)
	}
	if loadRows != 6 {
		t.Errorf("buffer load rows: got %d, want 6", loadRows)
	}

	var rd, packetID, injectionRd int
	if err := db.QueryRow("SELECT Rd, PacketID, InjectionRd FROM absorptions").Scan(&rd, &packetID, &injectionRd); err != nil {
		t.Fatalf("reading absorption row: %v", err)
	}
	if rd != 1 || packetID != p.ID() || injectionRd != 1 {
		t.Errorf("absorption row: got (%d, %d, %d), want (1, %d, 1)", rd, packetID, injectionRd, p.ID())
	}
}

func TestSQLite_RefusesToOverwriteExistingDatabase(t *testing.T) {
	// GIVEN a file already sitting at the database path
	dbPath := filepath.Join(t.TempDir(), "records")
	if err := os.WriteFile(dbPath+".sqlite3", []byte("occupied"), 0o644); err != nil {
		t.Fatal(err)
	}

	// WHEN a SQLite recorder targets it THEN construction panics
	defer func() {
		if recover() == nil {
			t.Error("NewSQLite over an existing file did not panic")
		}
	}()
	NewSQLite(dbPath)
}

func TestFromConfig_BuildsEachVariant(t *testing.T) {
	// GIVEN configs for every known recorder name
	outputPath := t.TempDir()
	cases := []struct {
		name string
		want Kind
	}{
		{"debug_print", KindDebugPrint},
		{"buffer_load_csv", KindBufferLoadCSV},
		{"absorption_csv", KindAbsorptionCSV},
		{"sqlite", KindSQLite},
	}

	// THEN each builds the matching variant
	for _, tc := range cases {
		recorder, err := FromConfig(sim.RecorderConfig{Name: tc.name}, outputPath)
		if err != nil {
			t.Fatalf("FromConfig(%q): %v", tc.name, err)
		}
		if recorder.Kind() != tc.want {
			t.Errorf("FromConfig(%q): kind %s, want %s", tc.name, recorder.Kind(), tc.want)
		}
	}
}

func TestFromConfig_UnknownName_Errors(t *testing.T) {
	// WHEN the config names no known recorder THEN construction fails
	if _, err := FromConfig(sim.RecorderConfig{Name: "stdout"}, t.TempDir()); err == nil {
		t.Error("FromConfig with unknown name: got nil error")
	}
}
