// The round-synchronous simulation driver. Each round injects the
// adversary's packets, records the post-injection state, checks the
// termination threshold, forwards once, records the post-forward state with
// the absorbed packets, and checks the threshold again. Execution is strictly
// single-threaded within one simulation; independent simulations share no
// state and may run concurrently.

package sim

import (
	"github.com/sirupsen/logrus"
)

// Adversary is the injection policy the driver consumes. Implementations
// live in sim/adversary; each returned packet already carries a path and an
// injection round consistent with rd.
type Adversary interface {
	// NextPackets creates the packets to inject for round rd. It may return
	// zero or more packets and must never return absorbed ones.
	NextPackets(network *BufferNetwork, rd int) []*Packet
}

// Recorder is a side-effecting observation sink. Implementations live in
// sim/record. The driver calls Record exactly twice per round: once after
// injection with absorbed == nil, once after forwarding with the protocol's
// absorbed packets. Close is called exactly once when the simulation ends.
type Recorder interface {
	Record(rd int, postForward bool, network *BufferNetwork, absorbed []*Packet)
	Close()
}

// Simulation owns all data for one run: the network, the protocol, the
// adversary, the termination threshold, and the recorders.
type Simulation struct {
	network   *BufferNetwork
	protocol  *Protocol
	adversary Adversary
	threshold *Threshold
	recorders []Recorder
}

// NewSimulation assembles a simulation. The caller hands over ownership of
// the network; no other mutation path exists while the simulation runs.
func NewSimulation(
	network *BufferNetwork,
	protocol *Protocol,
	adversary Adversary,
	threshold *Threshold,
	recorders []Recorder,
) *Simulation {
	return &Simulation{
		network:   network,
		protocol:  protocol,
		adversary: adversary,
		threshold: threshold,
		recorders: recorders,
	}
}

// Network returns the simulation's network, for inspection after Run.
func (s *Simulation) Network() *BufferNetwork {
	return s.network
}

// Run executes rounds until the threshold trips, then finalizes every
// recorder. Rounds are numbered from 1.
func (s *Simulation) Run() {
	rd := 1
	for {
		for _, p := range s.adversary.NextPackets(s.network, rd) {
			logrus.Debugf("[rd %05d] injecting %s", rd, p)
			s.protocol.AddPacket(p, s.network)
		}
		for _, r := range s.recorders {
			r.Record(rd, false, s.network, nil)
		}
		if s.threshold.ShouldStop(rd, s.network) {
			break
		}

		absorbed := s.protocol.ForwardPackets(s.network)
		if len(absorbed) > 0 {
			logrus.Debugf("[rd %05d] absorbed %d packet(s)", rd, len(absorbed))
		}
		for _, r := range s.recorders {
			r.Record(rd, true, s.network, absorbed)
		}
		if s.threshold.ShouldStop(rd, s.network) {
			break
		}
		rd++
	}
	logrus.Infof("[rd %05d] simulation ended, total load %d", rd, s.network.TotalLoad())
	for _, r := range s.recorders {
		r.Close()
	}
}
