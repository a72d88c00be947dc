package sim

import (
	"testing"
)

func TestHigherPriority_StrictTotalOrder(t *testing.T) {
	// GIVEN packets with distinct (round, id) keys
	factory := NewPacketFactory()
	p := factory.Create(PacketPath{0, 1}, 0, 0) // id 0, rd 0
	q := factory.Create(PacketPath{0, 1}, 0, 0) // id 1, rd 0
	r := factory.Create(PacketPath{0, 1}, 3, 0) // id 2, rd 3
	packets := []*Packet{p, q, r}

	// THEN the relation is irreflexive
	for _, x := range packets {
		if HigherPriority(x, x) {
			t.Errorf("HigherPriority(%v, %v): got true, want false", x, x)
		}
	}

	// AND antisymmetric: exactly one direction holds for distinct packets
	for _, x := range packets {
		for _, y := range packets {
			if x == y {
				continue
			}
			if HigherPriority(x, y) == HigherPriority(y, x) {
				t.Errorf("antisymmetry violated for %v, %v", x, y)
			}
		}
	}

	// AND transitive over the chain p > q > r
	if !HigherPriority(p, q) || !HigherPriority(q, r) || !HigherPriority(p, r) {
		t.Error("expected p > q > r by (round, id)")
	}
}

func TestHigherPriority_RoundBeforeId(t *testing.T) {
	// GIVEN an older packet with a larger id
	factory := NewPacketFactory()
	young := factory.Create(PacketPath{0, 1}, 5, 0) // id 0, rd 5
	old := factory.Create(PacketPath{0, 1}, 1, 0)   // id 1, rd 1

	// THEN injection round dominates id
	if !HigherPriority(old, young) {
		t.Error("HigherPriority(rd1, rd5): got false, want true")
	}
	if HigherPriority(young, old) {
		t.Error("HigherPriority(rd5, rd1): got true, want false")
	}
}

func TestOldestYoungestIn_UsePriorityOrder(t *testing.T) {
	// GIVEN a buffer holding rounds [2, 0, 1] in insertion order
	factory := NewPacketFactory()
	eb := &EdgeBuffer{}
	p2 := factory.Create(PacketPath{0, 1, 2}, 2, 0)
	p0 := factory.Create(PacketPath{0, 1, 2}, 0, 0)
	p1 := factory.Create(PacketPath{0, 1, 2}, 1, 0)
	eb.Push(p2)
	eb.Push(p0)
	eb.Push(p1)

	// WHEN the extremes are selected
	oldest, oldestIdx := OldestIn(eb)
	youngest, youngestIdx := YoungestIn(eb)

	// THEN oldest is the round-0 packet and youngest the round-2 packet
	if oldest != p0 || oldestIdx != 1 {
		t.Errorf("OldestIn: got (%v, %d), want (%v, 1)", oldest, oldestIdx, p0)
	}
	if youngest != p2 || youngestIdx != 0 {
		t.Errorf("YoungestIn: got (%v, %d), want (%v, 0)", youngest, youngestIdx, p2)
	}
}

func TestOldestYoungestIn_TieBreaksById(t *testing.T) {
	// GIVEN a buffer with two packets from the same round
	factory := NewPacketFactory()
	eb := &EdgeBuffer{}
	first := factory.Create(PacketPath{0, 1}, 4, 0)  // id 0
	second := factory.Create(PacketPath{0, 1}, 4, 0) // id 1
	eb.Push(second)
	eb.Push(first)

	// THEN the smaller id is oldest and the larger id youngest
	if oldest, _ := OldestIn(eb); oldest != first {
		t.Errorf("OldestIn tie: got id %d, want %d", oldest.ID(), first.ID())
	}
	if youngest, _ := YoungestIn(eb); youngest != second {
		t.Errorf("YoungestIn tie: got id %d, want %d", youngest.ID(), second.ID())
	}
}

func TestOldestYoungestIn_EmptyBuffer(t *testing.T) {
	// GIVEN an empty buffer
	eb := &EdgeBuffer{}

	// THEN both selections report absence
	if p, idx := OldestIn(eb); p != nil || idx != -1 {
		t.Errorf("OldestIn empty: got (%v, %d), want (nil, -1)", p, idx)
	}
	if p, idx := YoungestIn(eb); p != nil || idx != -1 {
		t.Errorf("YoungestIn empty: got (%v, %d), want (nil, -1)", p, idx)
	}
}
