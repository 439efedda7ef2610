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

// TrimAndFilter implements spec §4.11: strip a leading forward-primer
// match and a trailing terminating-primer match, then decide whether the
// result survives the length/terminal-primer keep rule.
func TrimAndFilter(seq []byte, ps *PrimerSet, reachedTerminalPrimer bool, minLength, maxLength int) (trimmed []byte, keep bool, fullLength bool) {
	out := seq
	m := ps.Length

	if len(out) >= m {
		if lead, clean := PackKmer(out, 0, m); clean && ps.MatchForward(lead) {
			out = out[m:]
		}
	}

	if len(out) >= m {
		tailOffset := len(out) - m
		if tail, clean := PackKmer(out, tailOffset, m); clean && ps.MatchTerminating(tail) {
			out = out[:tailOffset]
			fullLength = true
		}
	}

	if maxLength > 0 && len(out) > maxLength {
		return out, false, fullLength
	}
	keep = reachedTerminalPrimer || fullLength || (minLength > 0 && len(out) >= minLength)
	return out, keep, fullLength
}

// ExtendedReadsMultiset dereplicates extended reads into occurrence counts
// (spec §3/§4.11), preserving first-seen order for deterministic output
// when the writer doesn't otherwise reorder.
type ExtendedReadsMultiset struct {
	counts map[string]int
	order  []string
}

// NewExtendedReadsMultiset returns an empty multiset.
func NewExtendedReadsMultiset() *ExtendedReadsMultiset {
	return &ExtendedReadsMultiset{counts: make(map[string]int)}
}

// Add records one more occurrence of seq.
func (m *ExtendedReadsMultiset) Add(seq []byte) {
	s := string(seq)
	if _, ok := m.counts[s]; !ok {
		m.order = append(m.order, s)
	}
	m.counts[s]++
}

// AmpliconEntry is one dereplicated amplicon and its occurrence count.
type AmpliconEntry struct {
	Seq   string
	Count int
}

// Entries returns every distinct sequence with its count, in first-seen
// order.
func (m *ExtendedReadsMultiset) Entries() []AmpliconEntry {
	out := make([]AmpliconEntry, 0, len(m.order))
	for _, s := range m.order {
		out = append(out, AmpliconEntry{Seq: s, Count: m.counts[s]})
	}
	return out
}

// Len returns the number of distinct sequences recorded.
func (m *ExtendedReadsMultiset) Len() int {
	return len(m.counts)
}
