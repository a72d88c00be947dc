// Line-buffered CSV output. Rows accumulate in memory and are appended to
// the output file whenever the buffer reaches its line limit, so long runs
// do not hold their whole history in memory.

package record

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aqt-sim/aqt-sim/sim"
)

const defaultLineLimit = 5000

const (
	bufferLoadCSVHeader = "rd,prime,buffer_from,buffer_to,load"
	absorptionCSVHeader = "rd,packet_id,injection_rd"
)

type csvWriter struct {
	lineLimit      int
	lines          []string
	outputFilepath string
}

func newCSVWriter(outputFilepath, header string) *csvWriter {
	return &csvWriter{
		lineLimit:      defaultLineLimit,
		lines:          []string{header},
		outputFilepath: outputFilepath,
	}
}

// writeBufferLoads appends one row per buffer, in canonical edge order.
// prime is 1 for the post-forward observation.
func (w *csvWriter) writeBufferLoads(rd int, postForward bool, network *sim.BufferNetwork) {
	prime := 0
	if postForward {
		prime = 1
	}
	for _, e := range network.Edges() {
		w.write(fmt.Sprintf("%d,%d,%d,%d,%d", rd, prime, e.From, e.To, network.Load(e.From, e.To)))
	}
}

// writeAbsorptions appends one row per packet absorbed this round.
func (w *csvWriter) writeAbsorptions(rd int, absorbed []*sim.Packet) {
	for _, p := range absorbed {
		w.write(fmt.Sprintf("%d,%d,%d", rd, p.ID(), p.InjectionRound()))
	}
}

func (w *csvWriter) write(line string) {
	if len(w.lines) >= w.lineLimit {
		w.save()
		w.lines = nil
	}
	w.lines = append(w.lines, line)
}

func (w *csvWriter) save() {
	if len(w.lines) == 0 {
		return
	}
	if err := os.MkdirAll(filepath.Dir(w.outputFilepath), 0o755); err != nil {
		logrus.Errorf("couldn't create output directory for %s: %v", w.outputFilepath, err)
		return
	}
	f, err := os.OpenFile(w.outputFilepath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		logrus.Errorf("couldn't open %s: %v", w.outputFilepath, err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(w.lines, "\n") + "\n"); err != nil {
		logrus.Errorf("couldn't write to %s: %v", w.outputFilepath, err)
	}
}

func (w *csvWriter) close() {
	w.save()
	w.lines = nil
}
