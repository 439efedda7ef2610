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

// contextSupport reports whether every pair length L <= off+32 has a
// context hit between the 32-mer preceding offset off and variant (spec
// §4.9's per-variant pair check).
func contextSupport(read []byte, off int, variant uint64, cts *ContextTables) bool {
	limit := off + 32
	for _, L := range cts.LsUpTo(limit) {
		p := off - L + 32
		if p < 0 || p+32 > len(read) {
			continue
		}
		aCode, clean := PackKmer(read, p, 32)
		if !clean {
			continue
		}
		if !cts.Hit(L, aCode, variant) {
			return false
		}
	}
	return true
}

// doubleSubstitutionVariants enumerates every variant of a 32-base window
// obtained by substituting two distinct positions, each to one of the 3
// bases different from its original (spec §4.9: cleaning the very first
// kMer of a starting read gets this wider search).
func doubleSubstitutionVariants(window []byte) [][]byte {
	bases := []byte{'A', 'C', 'G', 'T'}
	var out [][]byte
	for i := 0; i < len(window); i++ {
		oi := window[i]
		for j := i + 1; j < len(window); j++ {
			oj := window[j]
			for _, bi := range bases {
				if bi == oi {
					continue
				}
				for _, bj := range bases {
					if bj == oj {
						continue
					}
					v := append([]byte(nil), window...)
					v[i] = bi
					v[j] = bj
					out = append(out, v)
				}
			}
		}
	}
	return out
}

// lastBaseVariantBytes enumerates the 3 variants of a 32-base window
// obtained by substituting only its last base (spec §4.9's narrower search
// for every kMer after the first — the asymmetry is intentional, see
// DESIGN.md's note on spec §9 OQ2).
func lastBaseVariantBytes(window []byte) [][]byte {
	bases := []byte{'A', 'C', 'G', 'T'}
	orig := window[len(window)-1]
	out := make([][]byte, 0, 3)
	for _, b := range bases {
		if b == orig {
			continue
		}
		v := append([]byte(nil), window...)
		v[len(v)-1] = b
		out = append(out, v)
	}
	return out
}

// CleanStartingRead implements spec §4.9's "Clean" step. It returns the
// possibly-truncated, possibly-substituted read and whether cleaning
// succeeded at all (false iff the very first kMer had no viable fix).
func CleanStartingRead(read []byte, dt *DepthTable, cts *ContextTables) ([]byte, bool) {
	n := len(read) - 32 + 1
	if n <= 0 {
		return nil, false
	}
	buf := append([]byte(nil), read...)

	consecutiveChanges := 0
	var previousDepth uint32
	hasPrevious := false

	for off := 0; off < n; off++ {
		code, clean := PackKmer(buf, off, 32)
		var d uint32
		if clean {
			d = dt.get(code)
		}

		fails := !clean || float64(d) < dt.NoiseLevel
		if hasPrevious && !fails {
			fails = !closeDepth(d, previousDepth)
		}
		if !fails {
			previousDepth = d
			hasPrevious = true
			consecutiveChanges = 0
			continue
		}

		var candidates [][]byte
		if off == 0 {
			candidates = doubleSubstitutionVariants(buf[0:32])
		} else {
			candidates = lastBaseVariantBytes(buf[off : off+32])
		}

		type candidate struct {
			seq   []byte
			code  uint64
			depth uint32
		}
		var surv []candidate
		for _, v := range candidates {
			vcode, vclean := PackKmer(v, 0, 32)
			if !vclean {
				continue
			}
			vd := dt.get(vcode)
			if vd == 0 {
				continue
			}
			if !contextSupport(buf, off, vcode, cts) {
				continue
			}
			surv = append(surv, candidate{v, vcode, vd})
		}

		if len(surv) == 0 {
			if off == 0 {
				return nil, false
			}
			return buf[:off+31], true
		}

		best := surv[0]
		for _, c := range surv[1:] {
			if c.depth > best.depth {
				best = c
			}
		}

		var followingDepth uint32
		if off+1 < n {
			if fc, fok := PackKmer(buf, off+1, 32); fok {
				followingDepth = dt.get(fc)
			}
		}

		substitute := best.code != code &&
			float64(d) <= 0.05*float64(best.depth) &&
			!closeDepth(d, previousDepth) &&
			!closeDepth(d, followingDepth) &&
			float64(d) < dt.MeanDepth/2 &&
			float64(best.depth) >= dt.NoiseLevel

		if substitute {
			copy(buf[off:off+32], best.seq)
			consecutiveChanges++
			if consecutiveChanges > 2 {
				return buf[:off+31], true
			}
			previousDepth = best.depth
		} else {
			consecutiveChanges = 0
			previousDepth = d
		}
		hasPrevious = true
	}

	return buf, true
}

// ExtendShort implements spec §4.9's "Extend-short" step: walk forward one
// base at a time while len(read) < minLen, accepting the next base only
// when it clears the depth/pair-support bar.
func ExtendShort(read []byte, dt *DepthTable, cts *ContextTables, minLen int) []byte {
	buf := append([]byte(nil), read...)
	if len(buf) < 32 {
		return buf
	}
	lastCode, clean := PackKmer(buf, len(buf)-32, 32)
	if !clean {
		return buf
	}
	previousDepth := dt.get(lastCode)

	for len(buf) < minLen {
		type candidate struct {
			code  uint64
			depth uint32
		}
		variants := NextKmers(lastCode)

		var alive []candidate
		var totalDepth uint64
		for _, v := range variants {
			d := dt.get(v)
			if d == 0 {
				continue
			}
			totalDepth += uint64(d)
			alive = append(alive, candidate{v, d})
		}
		if len(alive) == 0 {
			break
		}

		var survivors []candidate
		for _, c := range alive {
			if contextSupportForNext(buf, c.code, cts) {
				survivors = append(survivors, c)
			}
		}
		if len(survivors) == 0 {
			break
		}

		best := survivors[0]
		for _, c := range survivors[1:] {
			if c.depth > best.depth {
				best = c
			}
		}

		var bestFrac float64
		if totalDepth > 0 {
			bestFrac = float64(best.depth) / float64(totalDepth)
		}
		accept := bestFrac >= 0.98
		if !accept {
			accept = float64(best.depth) >= dt.NoiseLevel && closeDepth(best.depth, previousDepth)
		}
		if !accept {
			break
		}

		buf = append(buf, bit2base[best.code&3])
		lastCode = best.code
		previousDepth = best.depth
	}
	return buf
}

// contextSupportForNext is contextSupport specialized for a full 32-mer
// appended at the very end of buf (spec §4.9's extend-short pair check).
func contextSupportForNext(buf []byte, nextCode uint64, cts *ContextTables) bool {
	off := len(buf) - 31
	return contextSupport(append(append([]byte(nil), buf...), bit2base[nextCode&3]), off, nextCode, cts)
}

// BuildStartOfRegion records the 40-mer immediately following the forward
// primer in every surviving starting read (spec §4.9's "Rescue" step).
func BuildStartOfRegion(startingSeqs [][]byte, forwardPrimerLength int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, seq := range startingSeqs {
		if len(seq) < forwardPrimerLength+40 {
			continue
		}
		set[string(seq[forwardPrimerLength:forwardPrimerLength+40])] = struct{}{}
	}
	return set
}

// RescueReads scans non-starting reads for one of BuildStartOfRegion's
// signatures within the first forwardPrimerLength bases, and treats the
// suffix from that point on as an additional starting read (spec §4.9).
func RescueReads(nonStarting []ReadRecord, signatures map[string]struct{}, forwardPrimerLength int) []ReadRecord {
	var rescued []ReadRecord
	for _, r := range nonStarting {
		seq := r.Seq
		for p := 0; p < forwardPrimerLength && p+40 <= len(seq); p++ {
			if _, ok := signatures[string(seq[p:p+40])]; ok {
				out := r
				out.Seq = seq[p:]
				if r.Qual != nil {
					out.Qual = r.Qual[p:]
				}
				out.Tag = FP
				out.Pos = p
				rescued = append(rescued, out)
				break
			}
		}
	}
	return rescued
}
