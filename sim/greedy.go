// Greedy forwarding variants. Both scan edges in the canonical order, pull up
// to capacity packets out of each buffer into a pending-move list, and only
// after every edge has been scanned replay the list: absorbed packets go to
// the result, all others are re-inserted into their new buffer.

package sim

// forwardGreedy implements one round of Greedy-FIFO or Greedy-LIS. The two
// differ only in which packet each of the capacity slots serves: FIFO takes
// the front of the buffer (oldest-inserted), LIS takes the packet with the
// smallest injection round still in the buffer, recomputed after each
// removal. LIS ties on injection round break by scan order; it keys on age
// only, never on packet id.
func (pr *Protocol) forwardGreedy(network *BufferNetwork) []*Packet {
	var pending []*Packet

	for _, e := range network.Edges() {
		eb, _ := network.Buffer(e.From, e.To)
		numToFwd := min(pr.capacity, eb.Len())
		for i := 0; i < numToFwd; i++ {
			var p *Packet
			switch pr.kind {
			case KindGreedyFIFO:
				p = eb.PopFront()
			case KindGreedyLIS:
				p = eb.Remove(longestInSystemIdx(eb))
			}
			p.Advance()
			pending = append(pending, p)
		}
	}

	absorbed := make([]*Packet, 0)
	for _, p := range pending {
		if p.ShouldAbsorb() {
			absorbed = append(absorbed, p)
		} else {
			pr.AddPacket(p, network)
		}
	}
	return absorbed
}

// longestInSystemIdx returns the position of the packet with the smallest
// injection round, taking the first such packet in scan order. The buffer
// must be non-empty.
func longestInSystemIdx(eb *EdgeBuffer) int {
	packets := eb.Packets()
	idx := 0
	for i := 1; i < len(packets); i++ {
		if packets[i].InjectionRound() < packets[idx].InjectionRound() {
			idx = i
		}
	}
	return idx
}
