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

// ContextTables holds one ContextTable per pair length L (spec §3/§4.8),
// L ranging over 40, 48, 56, ... up to the longest read's length.
type ContextTables struct {
	Ls     []int
	tables map[int]map[uint64]uint32
}

// BuildContextTables tiles every selected read for 32-mer pairs at
// (p, p+L-32) for each L, skipping any pair whose endpoint kMer has zero
// denoised depth, and counts hashPair(a, b) = canonical(canonical(a) XOR
// canonical(b), 32) occurrences (spec §4.8).
func BuildContextTables(reads []ReadRecord, dt *DepthTable, maxReadLength int) *ContextTables {
	cts := &ContextTables{tables: make(map[int]map[uint64]uint32)}
	for L := 40; L <= maxReadLength; L += 8 {
		cts.Ls = append(cts.Ls, L)
		cts.tables[L] = make(map[uint64]uint32)
	}

	for _, r := range reads {
		seq := r.Seq
		for _, L := range cts.Ls {
			table := cts.tables[L]
			for p := 0; p+L <= len(seq); p++ {
				aCode, aClean := PackKmer(seq, p, 32)
				if !aClean {
					continue
				}
				bOffset := p + L - 32
				bCode, bClean := PackKmer(seq, bOffset, 32)
				if !bClean {
					continue
				}
				if dt.get(aCode) == 0 || dt.get(bCode) == 0 {
					continue
				}
				table[HashPair(aCode, bCode)]++
			}
		}
	}
	return cts
}

// Hit reports whether the pair (a, b) at separation L has ever been
// observed (spec §4.9/§4.10's "context hit").
func (cts *ContextTables) Hit(L int, a, b uint64) bool {
	table, ok := cts.tables[L]
	if !ok {
		return false
	}
	return table[HashPair(a, b)] > 0
}

// LsUpTo returns the pair lengths <= limit, in ascending order (spec
// §4.9's "every pair length L <= current-offset+32", §4.10 step 7's
// ascending-L context pruning).
func (cts *ContextTables) LsUpTo(limit int) []int {
	var out []int
	for _, L := range cts.Ls {
		if L > limit {
			break
		}
		out = append(out, L)
	}
	return out
}
