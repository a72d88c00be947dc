package sim

// HigherPriority reports whether packet p has strictly higher priority than q.
// Priority is keyed first by injection round (older = higher priority), then
// by id as the tie-break, so the relation is a strict total order over
// packets with distinct ids. Every "oldest"/"youngest" selection in the
// protocols uses this order.
func HigherPriority(p, q *Packet) bool {
	if p.injectionRd != q.injectionRd {
		return p.injectionRd < q.injectionRd
	}
	return p.id < q.id
}

// OldestIn returns the highest-priority packet in the buffer together with
// its position, scanning front to back. Returns (nil, -1) for an empty
// buffer.
func OldestIn(eb *EdgeBuffer) (*Packet, int) {
	var oldest *Packet
	idx := -1
	for i, p := range eb.Packets() {
		if oldest == nil || HigherPriority(p, oldest) {
			oldest = p
			idx = i
		}
	}
	return oldest, idx
}

// YoungestIn returns the lowest-priority packet in the buffer together with
// its position, scanning front to back. Returns (nil, -1) for an empty
// buffer.
func YoungestIn(eb *EdgeBuffer) (*Packet, int) {
	var youngest *Packet
	idx := -1
	for i, p := range eb.Packets() {
		if youngest == nil || HigherPriority(youngest, p) {
			youngest = p
			idx = i
		}
	}
	return youngest, idx
}
