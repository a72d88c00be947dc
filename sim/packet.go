// Defines the Packet struct that models an individual packet in the AQT model.
// Tracks identity, the preassigned route, the route cursor, and the injection round.

package sim

import (
	"fmt"
)

// PacketPath is the ordered sequence of nodes a packet must traverse through
// a BufferNetwork.
type PacketPath []NodeID

// Packet models a single packet's lifecycle in the simulation.
// Each packet has:
// - a unique id, assigned once by a PacketFactory and never reused
// - a PacketPath to follow through the network
// - a cursor into that path marking where the packet currently is
// - the round on which it was injected, the primary scheduling key
//
// Two packets are the same packet iff their ids are equal; no other field
// participates in identity. The cursor is mutated only by protocols, via
// Advance and Retreat.
type Packet struct {
	id          int
	path        PacketPath
	pathIdx     int
	injectionRd int
}

// ID returns this packet's unique id.
func (p *Packet) ID() int {
	return p.id
}

// InjectionRound returns the round on which this packet entered the network.
func (p *Packet) InjectionRound() int {
	return p.injectionRd
}

// Path returns the packet's route. Callers must not modify the returned slice.
func (p *Packet) Path() PacketPath {
	return p.path
}

// PathIndex returns the current cursor into the packet's path.
func (p *Packet) PathIndex() int {
	return p.pathIdx
}

// Advance moves the cursor one hop forward. Panics if the packet is already
// absorbed; a protocol that advances an absorbed packet has a bug in its
// move selection.
func (p *Packet) Advance() {
	if p.IsAbsorbed() {
		panic(fmt.Sprintf("packet %d has already been absorbed", p.id))
	}
	p.pathIdx++
}

// Retreat moves the cursor one hop backward. Panics if the packet is at the
// beginning of its path.
func (p *Packet) Retreat() {
	if p.pathIdx == 0 {
		panic(fmt.Sprintf("packet %d is already at the beginning of its path", p.id))
	}
	p.pathIdx--
}

// IsAbsorbed reports whether the cursor has run off the end of the path.
func (p *Packet) IsAbsorbed() bool {
	return p.pathIdx == len(p.path)
}

// ShouldAbsorb reports whether the packet has reached the final node of its
// path, meaning the next forward step absorbs it. Protocols report such
// packets as absorbed instead of re-inserting them.
func (p *Packet) ShouldAbsorb() bool {
	return p.pathIdx == len(p.path)-1
}

// CurrentNode returns the node the packet currently occupies. The second
// return value is false if the packet has been absorbed.
func (p *Packet) CurrentNode() (NodeID, bool) {
	if p.pathIdx >= len(p.path) {
		return 0, false
	}
	return p.path[p.pathIdx], true
}

// NextNode returns the node the packet will occupy if forwarded. The second
// return value is false if the packet has been absorbed or occupies the final
// node of its path.
func (p *Packet) NextNode() (NodeID, bool) {
	if p.pathIdx+1 >= len(p.path) {
		return 0, false
	}
	return p.path[p.pathIdx+1], true
}

// DistToGo returns the number of forward steps left until absorption,
// including the absorption step itself.
func (p *Packet) DistToGo() int {
	return len(p.path) - p.pathIdx
}

// Equal reports whether q is the same packet as p. Identity is by id only.
func (p *Packet) Equal(q *Packet) bool {
	return q != nil && p.id == q.id
}

// This method returns a human-readable string representation of a Packet.
func (p *Packet) String() string {
	if cur, ok := p.CurrentNode(); ok {
		return fmt.Sprintf("Packet(id=%d, at=%d, rd=%d)", p.id, cur, p.injectionRd)
	}
	return fmt.Sprintf("Packet(id=%d, absorbed, rd=%d)", p.id, p.injectionRd)
}

// PacketFactory is the only authority allowed to mint packet ids. Ids are
// unique within one factory's lifetime, which is enough because each packet
// stream is recorded and consumed independently. One factory belongs to one
// injection source; it is never shared across simulations.
type PacketFactory struct {
	nextID int
}

// NewPacketFactory creates a factory whose first packet will get id 0.
func NewPacketFactory() *PacketFactory {
	return &PacketFactory{}
}

// Create mints a new packet with the next id. pathIdx is the initial cursor,
// 0 for packets injected at the start of their route. Panics if pathIdx lies
// outside [0, len(path)].
func (f *PacketFactory) Create(path PacketPath, injectionRd int, pathIdx int) *Packet {
	if pathIdx < 0 || pathIdx > len(path) {
		panic(fmt.Sprintf("initial cursor %d outside path of length %d", pathIdx, len(path)))
	}
	p := &Packet{
		id:          f.nextID,
		path:        path,
		pathIdx:     pathIdx,
		injectionRd: injectionRd,
	}
	f.nextID++
	return p
}
