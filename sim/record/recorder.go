// Package record implements the result sinks a simulation reports to. A
// Recorder observes the network twice per round, once after injection and
// once after forwarding, and is closed exactly once when the simulation
// ends. Recorder is a closed tagged union over the known sinks; every
// variant satisfies sim.Recorder.
package record

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/aqt-sim/aqt-sim/sim"
)

// Kind tags a Recorder variant.
type Kind string

const (
	// KindDebugPrint dumps the whole network to the log each observation.
	KindDebugPrint Kind = "debug_print"
	// KindBufferLoadCSV appends one CSV row per buffer per observation.
	KindBufferLoadCSV Kind = "buffer_load_csv"
	// KindAbsorptionCSV appends one CSV row per packet absorbed.
	KindAbsorptionCSV Kind = "absorption_csv"
	// KindSQLite writes buffer loads and absorptions into a SQLite file.
	KindSQLite Kind = "sqlite"
)

// Recorder is one result sink instance.
type Recorder struct {
	kind Kind
	csv  *csvWriter
	db   *sqliteWriter
}

// Kind returns the variant tag.
func (r *Recorder) Kind() Kind {
	return r.kind
}

// NewDebugPrint returns a recorder that logs the network state at every
// observation point.
func NewDebugPrint() *Recorder {
	return &Recorder{kind: KindDebugPrint}
}

// NewBufferLoadCSV returns a recorder that writes per-buffer loads to the
// given CSV file.
func NewBufferLoadCSV(outputFilepath string) *Recorder {
	return &Recorder{
		kind: KindBufferLoadCSV,
		csv:  newCSVWriter(outputFilepath, bufferLoadCSVHeader),
	}
}

// NewAbsorptionCSV returns a recorder that writes one row per absorbed
// packet to the given CSV file.
func NewAbsorptionCSV(outputFilepath string) *Recorder {
	return &Recorder{
		kind: KindAbsorptionCSV,
		csv:  newCSVWriter(outputFilepath, absorptionCSVHeader),
	}
}

// NewSQLite returns a recorder that writes buffer loads and absorptions into
// a SQLite database at the given path. An empty path gets a generated name.
func NewSQLite(dbPath string) *Recorder {
	return &Recorder{kind: KindSQLite, db: newSQLiteWriter(dbPath)}
}

// Record takes one observation. absorbed is nil for the post-injection
// observation and the protocol's result for the post-forward one.
func (r *Recorder) Record(rd int, postForward bool, network *sim.BufferNetwork, absorbed []*sim.Packet) {
	switch r.kind {
	case KindDebugPrint:
		if postForward {
			logrus.Infof("%d':\n%s", rd, network)
		} else {
			logrus.Infof("%d:\n%s", rd, network)
		}
	case KindBufferLoadCSV:
		r.csv.writeBufferLoads(rd, postForward, network)
	case KindAbsorptionCSV:
		r.csv.writeAbsorptions(rd, absorbed)
	case KindSQLite:
		r.db.record(rd, postForward, network, absorbed)
	default:
		panic(fmt.Sprintf("unknown recorder kind: %s", r.kind))
	}
}

// Close flushes and releases the sink. Called exactly once.
func (r *Recorder) Close() {
	switch r.kind {
	case KindDebugPrint:
		logrus.Info("simulation finished")
	case KindBufferLoadCSV, KindAbsorptionCSV:
		r.csv.close()
	case KindSQLite:
		r.db.close()
	}
}

// FromConfig constructs the recorder a config names, placing its output
// under outputPath.
func FromConfig(cfg sim.RecorderConfig, outputPath string) (*Recorder, error) {
	switch Kind(cfg.Name) {
	case KindDebugPrint:
		return NewDebugPrint(), nil
	case KindBufferLoadCSV:
		return NewBufferLoadCSV(filepath.Join(outputPath, "buffer_loads.csv")), nil
	case KindAbsorptionCSV:
		return NewAbsorptionCSV(filepath.Join(outputPath, "absorptions.csv")), nil
	case KindSQLite:
		return NewSQLite(filepath.Join(outputPath, "records")), nil
	default:
		return nil, fmt.Errorf("unknown recorder name: %q", cfg.Name)
	}
}
