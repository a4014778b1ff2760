// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

// framePacer bounds how many submitted frames may be outstanding on the
// GPU. It records queue submission indices and compares them with the last
// completed index reported by the queue.
type framePacer struct {
	limit    int
	inflight []uint64
}

func newFramePacer(limit int) *framePacer {
	if limit < 1 {
		limit = 1
	}
	return &framePacer{limit: limit, inflight: make([]uint64, 0, limit)}
}

// retire drops every submission with index <= completed.
func (p *framePacer) retire(completed uint64) {
	n := 0
	for _, idx := range p.inflight {
		if idx > completed {
			p.inflight[n] = idx
			n++
		}
	}
	p.inflight = p.inflight[:n]
}

// wait returns once fewer than limit frames are in flight. completed
// reports the last finished submission; block waits for the GPU. If the
// queue still reports the oldest frame unfinished after blocking, that
// frame is dropped from tracking so the loop cannot stall. It reports
// whether it had to block.
func (p *framePacer) wait(completed func() uint64, block func()) bool {
	p.retire(completed())
	if len(p.inflight) < p.limit {
		return false
	}
	block()
	p.retire(completed())
	for len(p.inflight) >= p.limit {
		p.inflight = p.inflight[1:]
	}
	return true
}

// track records a new submission. Index 0 means "not submitted" and is
// ignored.
func (p *framePacer) track(idx uint64) {
	if idx == 0 {
		return
	}
	p.inflight = append(p.inflight, idx)
}

// inFlight returns the number of tracked submissions.
func (p *framePacer) inFlight() int { return len(p.inflight) }
