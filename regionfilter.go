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

// RegionFilter holds the growing set of 32-mers believed to lie between the
// primers (spec §3/§4.4): a starting filter of literal forward-strand
// 32-mer strings, and an ending filter of packed 32-mers seen immediately
// after a terminating-primer match, used only to stop tiling early.
type RegionFilter struct {
	starting map[string]struct{}
	ending   map[uint64]struct{}
}

// NewRegionFilter returns an empty filter.
func NewRegionFilter() *RegionFilter {
	return &RegionFilter{
		starting: make(map[string]struct{}),
		ending:   make(map[uint64]struct{}),
	}
}

// AddEnding inserts a packed 32-mer into the ending filter.
func (rf *RegionFilter) AddEnding(code uint64) {
	rf.ending[code] = struct{}{}
}

// HasPrefix reports whether any 32-mer among the first n read positions is
// in the starting filter (spec §4.6 checks the first 5 positions; §4.4's
// growth loop checks only position 0, i.e. n==1).
func (rf *RegionFilter) HasPrefix(seq []byte, n int) bool {
	if len(seq) < 32 {
		return false
	}
	if n > len(seq)-32+1 {
		n = len(seq) - 32 + 1
	}
	for i := 0; i < n; i++ {
		if _, ok := rf.starting[string(seq[i : i+32])]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of 32-mers in the starting filter.
func (rf *RegionFilter) Len() int {
	return len(rf.starting)
}

// tileAndAdd tiles seq left to right for 32-mers, adding each to the
// starting filter, and stops the first time it hits a window containing
// an N, a homopolymer-starting window, or a window already in the ending
// filter (spec §4.4/§4.12).
func (rf *RegionFilter) tileAndAdd(seq []byte) {
	if len(seq) < 32 {
		return
	}
	t := NewTiler(seq, 32)
	for {
		code, offset, clean, ok := t.Next()
		if !ok {
			break
		}
		if !clean {
			break
		}
		if HomopolymerHead10(seq, offset) {
			break
		}
		if _, stop := rf.ending[code]; stop {
			break
		}
		rf.starting[string(seq[offset:offset+32])] = struct{}{}
	}
}

// BuildRegionFilter runs the fixed-point growth of spec §4.4. reads must
// already be primer-scanned (Scan); endingKmers is the set gathered from
// every terminating-primer match across the whole read set. It returns the
// grown filter, a processed flag per read (used by later phases to know
// which reads already contributed), and the per-iteration growth counts
// (exposed for -save diagnostics, spec §9 OQ1).
func BuildRegionFilter(reads []ReadRecord, endingKmers []uint64) (rf *RegionFilter, processed []bool, growth []int) {
	rf = NewRegionFilter()
	for _, k := range endingKmers {
		rf.AddEnding(k)
	}

	processed = make([]bool, len(reads))

	for i, r := range reads {
		if r.Tag == NoTag {
			continue
		}
		rf.tileAndAdd(r.Seq)
		processed[i] = true
	}

	for {
		var matched []int
		for i, r := range reads {
			if processed[i] {
				continue
			}
			if rf.HasPrefix(r.Seq, 1) {
				matched = append(matched, i)
			}
		}
		if len(matched) == 0 {
			break
		}
		for _, i := range matched {
			rf.tileAndAdd(reads[i].Seq)
			processed[i] = true
		}
		growth = append(growth, len(matched))
		if len(growth) >= 2 && growth[len(growth)-1] > 2*growth[len(growth)-2] {
			break
		}
	}

	return rf, processed, growth
}

// RefineRegionFilters implements spec §4.5: union the per-file starting
// filters, keep only kMers whose RC is also present (canonical culling),
// and — in strict mode with more than one filter — additionally require
// presence, in either orientation, in every per-file filter.
func RefineRegionFilters(filters []*RegionFilter, strict bool) *RegionFilter {
	union := make(map[string]struct{})
	for _, f := range filters {
		for s := range f.starting {
			union[s] = struct{}{}
		}
	}

	refined := NewRegionFilter()
	for s := range union {
		code, ok := PackKmer([]byte(s), 0, 32)
		if !ok {
			continue
		}
		rcStr := string(UnpackKmer(RC(code, 32), 32))
		if _, ok := union[rcStr]; !ok {
			continue
		}
		if strict && len(filters) > 1 {
			allPresent := true
			for _, f := range filters {
				_, fwd := f.starting[s]
				_, rc := f.starting[rcStr]
				if !fwd && !rc {
					allPresent = false
					break
				}
			}
			if !allPresent {
				continue
			}
		}
		refined.starting[s] = struct{}{}
	}
	return refined
}
