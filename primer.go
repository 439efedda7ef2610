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

import "fmt"

// degenerateBases maps each IUPAC code to the concrete bases it stands for.
// Adapted from unikmer/cmd/util.go's degenerateBaseMapNucl, trimmed to the
// upper-case alphabet (primers are upper-cased on entry, see NewPrimerSet).
var degenerateBases = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T", 'U': "T",
	'R': "AG", 'Y': "CT", 'M': "AC", 'K': "GT", 'S': "CG", 'W': "AT",
	'H': "ACT", 'B': "CGT", 'V': "ACG", 'D': "AGT",
	'N': "ACGT",
}

// expandDegenerate enumerates every concrete ACGT string matching an IUPAC
// primer sequence. Adapted from unikmer/cmd/util.go's extendDegenerateSeq.
func expandDegenerate(s []byte) ([][]byte, error) {
	seqs := [][]byte{{}}
	for _, base := range s {
		bases, ok := degenerateBases[base]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrIllegalBase, base)
		}
		if len(bases) == 1 {
			for i := range seqs {
				seqs[i] = append(seqs[i], bases[0])
			}
			continue
		}
		more := make([][]byte, len(seqs)*(len(bases)-1))
		k := 0
		for i := 1; i < len(bases); i++ {
			for j := range seqs {
				cp := append(append([]byte{}, seqs[j]...), bases[i])
				more[k] = cp
				k++
			}
		}
		for i := range seqs {
			seqs[i] = append(seqs[i], bases[0])
		}
		seqs = append(seqs, more...)
	}
	return seqs, nil
}

// substitutionVariants returns every string obtained from s by substituting
// up to maxMismatches positions (each substitution one of A/C/G/T different
// from the original base), including s itself (0 mismatches).
func substitutionVariants(s []byte, maxMismatches int) [][]byte {
	out := [][]byte{append([]byte{}, s...)}
	if maxMismatches <= 0 {
		return out
	}
	out = append(out, substitutionsAtDepth(s, maxMismatches, 0)...)
	return dedupBytes(out)
}

// substitutionsAtDepth enumerates all combinations of 1..depth simultaneous
// single-base substitutions (not just exactly depth), recursively.
func substitutionsAtDepth(s []byte, depth, start int) [][]byte {
	var out [][]byte
	if depth == 0 {
		return out
	}
	for pos := start; pos < len(s); pos++ {
		orig := s[pos]
		for _, b := range []byte{'A', 'C', 'G', 'T'} {
			if b == orig {
				continue
			}
			variant := append([]byte{}, s...)
			variant[pos] = b
			out = append(out, variant)
			out = append(out, substitutionsAtDepth(variant, depth-1, pos+1)...)
		}
	}
	return out
}

func dedupBytes(in [][]byte) [][]byte {
	seen := make(map[string]struct{}, len(in))
	out := make([][]byte, 0, len(in))
	for _, b := range in {
		s := string(b)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, b)
	}
	return out
}

// PrimerSet holds the concrete, packed primer-length k-mers accepted as a
// match. Four orientations are tracked separately so a scan can tell which
// primer, and which end of it, actually matched (spec §4.3's FP/RP/FP'/RP'
// tags):
//
//   - forward:    the forward primer as given.
//   - reverse:    the reverse primer as given.
//   - starting:   forward ∪ RC(reverse) — a read beginning here is a
//     plausible amplicon-carrying read regardless of which
//     primer produced it (spec §4.2: "union with its RC").
//   - terminating: RC(starting) = RC(forward) ∪ reverse.
//
// Built once at startup and read-only thereafter (spec §3).
type PrimerSet struct {
	Length int // M = primerLength

	forward map[uint64]struct{}
	reverse map[uint64]struct{}

	starting    map[uint64]struct{}
	terminating map[uint64]struct{}
}

// NewPrimerSet expands the forward and reverse IUPAC primers into the
// packed-kmer sets above (spec §4.2). M = min(len(forward), len(reverse));
// each primer is trimmed on its 3' (right) end down to M before splitting
// into a 5' head (length M-15, up to floor(head/2) capped at 2 mismatches)
// and 3' core (length 15, up to 2 mismatches).
func NewPrimerSet(forward, reverse string) (*PrimerSet, error) {
	f := []byte(upperAll(forward))
	r := []byte(upperAll(reverse))

	m := len(f)
	if len(r) < m {
		m = len(r)
	}
	if m < 15 {
		return nil, fmt.Errorf("ipcr: effective primer length %d too short (need >= 15 for a 3' core)", m)
	}
	f = f[:m]
	r = r[:m]

	fVariants, err := primerVariants(f)
	if err != nil {
		return nil, fmt.Errorf("forward primer: %w", err)
	}
	rVariants, err := primerVariants(r)
	if err != nil {
		return nil, fmt.Errorf("reverse primer: %w", err)
	}

	ps := &PrimerSet{
		Length:      m,
		forward:     make(map[uint64]struct{}, len(fVariants)),
		reverse:     make(map[uint64]struct{}, len(rVariants)),
		starting:    make(map[uint64]struct{}, len(fVariants)+len(rVariants)),
		terminating: make(map[uint64]struct{}, len(fVariants)+len(rVariants)),
	}

	for _, v := range fVariants {
		code, ok := PackKmer(v, 0, m)
		if !ok {
			continue
		}
		ps.forward[code] = struct{}{}
		ps.starting[code] = struct{}{}
		ps.terminating[RC(code, m)] = struct{}{}
	}
	for _, v := range rVariants {
		code, ok := PackKmer(v, 0, m)
		if !ok {
			continue
		}
		ps.reverse[code] = struct{}{}
		ps.starting[RC(code, m)] = struct{}{}
		ps.terminating[code] = struct{}{}
	}

	return ps, nil
}

// primerVariants expands one IUPAC primer into its head/core mismatch
// cross product (spec §4.2): a 5' head of length H = M-15 tolerating up to
// min(floor(H/2), 2) substitutions, and a 3' core of length 15 tolerating
// up to 2 substitutions; each half is first expanded for IUPAC degeneracy.
func primerVariants(primer []byte) ([][]byte, error) {
	m := len(primer)
	h := m - 15
	head := primer[:h]
	core := primer[h:]

	headDegen, err := expandDegenerate(head)
	if err != nil {
		return nil, err
	}
	coreDegen, err := expandDegenerate(core)
	if err != nil {
		return nil, err
	}

	headMismatches := h / 2
	if headMismatches > 2 {
		headMismatches = 2
	}

	var heads, cores [][]byte
	for _, hd := range headDegen {
		heads = append(heads, substitutionVariants(hd, headMismatches)...)
	}
	for _, cd := range coreDegen {
		cores = append(cores, substitutionVariants(cd, 2)...)
	}
	heads = dedupBytes(heads)
	cores = dedupBytes(cores)

	out := make([][]byte, 0, len(heads)*len(cores))
	for _, hd := range heads {
		for _, cd := range cores {
			full := make([]byte, 0, m)
			full = append(full, hd...)
			full = append(full, cd...)
			out = append(out, full)
		}
	}
	return dedupBytes(out), nil
}

// MatchStarting reports whether code (a PackKmer'd window of length
// ps.Length) is a starting-primer variant, from either primer.
func (ps *PrimerSet) MatchStarting(code uint64) bool {
	_, ok := ps.starting[code]
	return ok
}

// MatchTerminating reports whether code is a terminating-primer variant,
// from either primer.
func (ps *PrimerSet) MatchTerminating(code uint64) bool {
	_, ok := ps.terminating[code]
	return ok
}

// MatchForward reports whether code is the forward primer itself: a match
// here at a read's start tags the read FP (spec §4.3).
func (ps *PrimerSet) MatchForward(code uint64) bool {
	_, ok := ps.forward[code]
	return ok
}

// MatchReverse reports whether code is the reverse primer itself: a match
// here at a read's end tags the read RP' (spec §4.3).
func (ps *PrimerSet) MatchReverse(code uint64) bool {
	_, ok := ps.reverse[code]
	return ok
}

// MatchForwardRC reports whether code is RC(forward primer): a match here
// at a read's end tags the read FP' (spec §4.3), and the read is
// reverse-complemented before it is used as a starting read (spec §4.6).
func (ps *PrimerSet) MatchForwardRC(code uint64) bool {
	_, ok := ps.terminating[code]
	if !ok {
		return false
	}
	_, isReverse := ps.reverse[code]
	return !isReverse
}

// MatchReverseRC reports whether code is RC(reverse primer): a match here
// at a read's start tags the read RP (spec §4.3).
func (ps *PrimerSet) MatchReverseRC(code uint64) bool {
	_, ok := ps.starting[code]
	if !ok {
		return false
	}
	_, isForward := ps.forward[code]
	return !isForward
}

// MatchTerminatingTop reports whether the top ps.Length*2 bits of a 32-mer
// form a terminating primer (spec §4.10 step 2). kmer32 must be a
// left-justified, full 32-mer code.
func (ps *PrimerSet) MatchTerminatingTop(kmer32 uint64) bool {
	shift := uint(64 - 2*ps.Length)
	top := (kmer32 >> shift) << shift
	return ps.MatchTerminating(top)
}

func upperAll(s string) string {
	b := []byte(s)
	for i, c := range b {
		b[i] = upper(c)
	}
	return string(b)
}
