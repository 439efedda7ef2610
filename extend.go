// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package ipcr

import (
	"math/rand"
	"sync"
	"time"
)

const maxLookAheadDepth = 20

type candidate struct {
	code  uint64
	depth uint32
}

type cachedResult struct {
	seq       []byte
	reachedTP bool
}

// extensionTrial is one look-ahead candidate's fully-extended result
// (spec §4.10 step 10).
type extensionTrial struct {
	depth     uint32
	seq       []byte
	reachedTP bool
}

// Extender runs the kMer-graph read-extension engine (spec §4.10). It is
// built once per run and shared read-only across starting reads except
// for its cache, which is guarded so extension may be parallelized across
// starting reads (spec §5).
type Extender struct {
	dt  *DepthTable
	cts *ContextTables
	ps  *PrimerSet

	cacheMu sync.Mutex
	cache   map[string]cachedResult

	// Seed, if non-zero, makes the look-ahead coin-toss deterministic
	// (spec §9: "deterministic builds should expose the seed").
	Seed int64

	randMu sync.Mutex
	rnd    *rand.Rand
}

// NewExtender builds an Extender over the denoised depth table, the
// family of context tables, and the terminating-primer set.
func NewExtender(dt *DepthTable, cts *ContextTables, ps *PrimerSet) *Extender {
	return &Extender{dt: dt, cts: cts, ps: ps, cache: make(map[string]cachedResult)}
}

// Extend grows start, a primer-first starting read of at least 32 bases,
// until it reaches a terminating primer, dead-ends, loops, or exceeds the
// look-ahead recursion limit (spec §4.10's Termination).
func (e *Extender) Extend(start []byte) (seq []byte, reachedTerminalPrimer bool) {
	if len(start) < 32 {
		return start, false
	}
	loopTrap := make(map[uint64]struct{})
	seq, reachedTerminalPrimer, _ = e.runFrom(start, loopTrap, 0)
	return seq, reachedTerminalPrimer
}

// runFrom is the deterministic walk of spec §4.10 steps 1-8, run as a
// loop: each iteration either resolves to exactly one next base (and
// loops) or, when more than one candidate survives every pruning stage,
// falls through to recursive look-ahead (step 10) and adopts its result.
// depth counts only look-ahead recursion, never the deterministic loop
// iterations — that is what keeps ordinary extension length unbounded by
// the 20-level cap while still bounding look-ahead's own branching.
func (e *Extender) runFrom(read []byte, loopTrap map[uint64]struct{}, depth int) (seq []byte, reachedTP bool, coinTossed bool) {
	cur := read
	for {
		kmerCode, clean := PackKmer(cur, len(cur)-32, 32)
		if !clean {
			return cur, false, false
		}
		if _, visited := loopTrap[kmerCode]; visited {
			return cur, false, false
		}
		if e.ps.MatchTerminatingTop(kmerCode) {
			return cur, true, false
		}

		survivors := e.candidatesAt(cur, kmerCode)
		if len(survivors) == 0 {
			return cur, false, false
		}
		if len(survivors) == 1 {
			loopTrap[kmerCode] = struct{}{}
			cur = append(cur, bit2base[survivors[0].code&3])
			continue
		}

		if depth >= maxLookAheadDepth {
			return cur, false, false
		}
		loopTrap[kmerCode] = struct{}{}
		return e.lookAhead(cur, survivors, loopTrap, depth)
	}
}

// candidatesAt implements spec §4.10 steps 3-8: generate the four
// next-kMer variants, drop dead (zero-depth) ones, apply depth pruning
// relative to the deepest survivor, then — while more than one candidate
// remains — apply context pruning at each pair length in ascending order.
func (e *Extender) candidatesAt(read []byte, kmerCode uint64) []candidate {
	var alive []candidate
	for _, v := range NextKmers(kmerCode) {
		if d := e.dt.get(v); d > 0 {
			alive = append(alive, candidate{v, d})
		}
	}
	if len(alive) == 0 {
		return nil
	}

	var deepest uint32
	for _, c := range alive {
		if c.depth > deepest {
			deepest = c.depth
		}
	}
	var pruned []candidate
	for _, c := range alive {
		if float64(c.depth) < e.dt.NoiseLevel && float64(c.depth) < float64(deepest)/20 && float64(c.depth) < e.dt.MeanDepth/2 {
			continue
		}
		pruned = append(pruned, c)
	}
	if len(pruned) > 0 {
		alive = pruned
	}
	if len(alive) <= 1 {
		return alive
	}

	survivors := alive
	for _, L := range e.cts.LsUpTo(len(read)) {
		if len(survivors) <= 1 {
			break
		}
		p := len(read) - L + 1
		if p < 0 || p+32 > len(read) {
			continue
		}
		aCode, aClean := PackKmer(read, p, 32)
		if !aClean {
			continue
		}
		var next []candidate
		for _, c := range survivors {
			if e.cts.Hit(L, aCode, c.code) {
				next = append(next, c)
			}
		}
		if len(next) == 0 {
			break
		}
		if len(next) == 1 && float64(next[0].depth) < e.dt.NoiseLevel {
			break
		}
		survivors = next
	}
	return survivors
}

// lookAhead implements spec §4.10 step 10: recursively extend a trial
// copy of read for each surviving candidate, then resolve by how many
// reached a terminal primer.
func (e *Extender) lookAhead(read []byte, survivors []candidate, loopTrap map[uint64]struct{}, depth int) ([]byte, bool, bool) {
	trials := make([]extensionTrial, 0, len(survivors))
	for _, c := range survivors {
		trap := cloneTrap(loopTrap)
		trialSeq := append(append([]byte(nil), read...), bit2base[c.code&3])
		seq, reachedTP := e.extendCached(trialSeq, trap, depth+1)
		trials = append(trials, extensionTrial{c.depth, seq, reachedTP})
	}

	var tpTrials []extensionTrial
	for _, t := range trials {
		if t.reachedTP {
			tpTrials = append(tpTrials, t)
		}
	}

	switch {
	case len(tpTrials) == 1:
		return tpTrials[0].seq, true, false
	case len(tpTrials) > 1:
		chosen := e.weightedChoice(tpTrials)
		return chosen.seq, true, true
	default:
		longest := trials[0]
		for _, t := range trials[1:] {
			if len(t.seq) > len(longest.seq) {
				longest = t
			}
		}
		return longest.seq, false, false
	}
}

// extendCached looks trialRead up in the extension cache before
// recursing, and stores the result afterward unless it was coin-tossed
// (spec §4.10's Caching — "only populated for deterministic extensions").
func (e *Extender) extendCached(trialRead []byte, loopTrap map[uint64]struct{}, depth int) (seq []byte, reachedTP bool) {
	key := string(trialRead)

	e.cacheMu.Lock()
	if cached, ok := e.cache[key]; ok {
		e.cacheMu.Unlock()
		return cached.seq, cached.reachedTP
	}
	e.cacheMu.Unlock()

	seq, reachedTP, coinTossed := e.runFrom(trialRead, loopTrap, depth)
	if !coinTossed {
		e.cacheMu.Lock()
		e.cache[key] = cachedResult{seq, reachedTP}
		e.cacheMu.Unlock()
	}
	return seq, reachedTP
}

// weightedChoice picks among trials with probability proportional to
// depth (spec §4.10 step 10: "choose one in proportion to the step-3
// depths of the candidates").
func (e *Extender) weightedChoice(trials []extensionTrial) extensionTrial {
	var total uint64
	for _, t := range trials {
		total += uint64(t.depth)
	}
	if total == 0 {
		return trials[0]
	}
	r := e.randInt63n(int64(total))
	var acc int64
	for _, t := range trials {
		acc += int64(t.depth)
		if r < acc {
			return t
		}
	}
	return trials[len(trials)-1]
}

// randInt63n draws from the shared *rand.Rand with randMu held across the
// whole operation, including the draw itself — rand.Rand is not safe for
// concurrent use, and lookAhead may run extension concurrently across
// starting reads (spec §5).
func (e *Extender) randInt63n(n int64) int64 {
	e.randMu.Lock()
	defer e.randMu.Unlock()
	if e.rnd == nil {
		seed := e.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rnd = rand.New(rand.NewSource(seed))
	}
	return e.rnd.Int63n(n)
}

func cloneTrap(src map[uint64]struct{}) map[uint64]struct{} {
	out := make(map[uint64]struct{}, len(src)+1)
	for k := range src {
		out[k] = struct{}{}
	}
	return out
}
