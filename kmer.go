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

// Packed k-mer algebra (spec §4.1). A k-mer of length k<=32 is held in a
// uint64, left-justified: the first base occupies the top two bits of the
// low 2k-bit field, and that field itself is shifted up so its top bit sits
// at bit 63. For k==32 the field fills the whole word, so left-justified is
// indistinguishable from right-justified there — the common case, since
// every DepthTable/ContextTable/extension k-mer uses k==32. The distinction
// only matters for primer-length codes (k<32), which need their bits
// aligned to the top of the word so they can be compared directly against
// the top bits of a 32-mer (spec §4.10 step 2).

// baseCode maps one strict ACGT base (case-insensitive) to its 2-bit code.
// Any other byte, including 'N' and IUPAC degeneracy codes, is rejected:
// reads are ACGTN and degenerate codes belong to primers only (spec §6).
func baseCode(b byte) (code uint64, ok bool) {
	switch b {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	}
	return 0, false
}

var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// packRight packs seq[offset:offset+k] into the low 2k bits of a uint64,
// first base most significant within that field. allACGT is false if any
// base in the window is not strict ACGT; invalid bases pack as zero so a
// caller that only needs the code for a window it already knows is clean
// doesn't have to special-case it.
func packRight(seq []byte, offset, k int) (code uint64, allACGT bool) {
	allACGT = true
	for i := 0; i < k; i++ {
		b, ok := baseCode(seq[offset+i])
		if !ok {
			allACGT = false
			continue
		}
		code |= b << uint((k-1-i)*2)
	}
	return code, allACGT
}

// PackKmer packs seq[offset:offset+k] left-justified into a uint64.
func PackKmer(seq []byte, offset, k int) (code uint64, allACGT bool) {
	code, allACGT = packRight(seq, offset, k)
	code <<= uint(64 - 2*k)
	return code, allACGT
}

// UnpackKmer decodes a left-justified k-length code back to bytes.
func UnpackKmer(code uint64, k int) []byte {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	code >>= uint(64 - 2*k)
	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = bit2base[code&3]
		code >>= 2
	}
	return out
}

// ShiftIn slides a left-justified k-length window one base to the right:
// the leftmost base is dropped, the remaining bases move up, and next
// occupies the new low position of the field. Used both for the fixed
// 32-mer graph walk (spec §4.10 step 3) and for scanning primer-length
// windows across a read (spec §4.3).
func ShiftIn(code uint64, k int, next byte) (newCode uint64, ok bool) {
	b, ok := baseCode(next)
	shift := uint(64 - 2*k)
	mask := ^uint64(0) << shift
	newCode = ((code << 2) & mask) | (b << shift)
	return newCode, ok
}

// reverseRight reverses the base order of a right-justified k-length code.
func reverseRight(code uint64, k int) (c uint64) {
	for i := 0; i < k; i++ {
		c <<= 2
		c |= code & 3
		code >>= 2
	}
	return
}

// complementRight complements a right-justified k-length code, base by base.
func complementRight(code uint64, k int) (c uint64) {
	for i := 0; i < k; i++ {
		c |= (code&3 ^ 3) << uint(i<<1)
		code >>= 2
	}
	return
}

// RC returns the reverse complement of a left-justified k-length code.
func RC(code uint64, k int) uint64 {
	if k <= 0 || k > 32 {
		panic(ErrKOverflow)
	}
	shift := uint(64 - 2*k)
	right := code >> shift
	rc := complementRight(reverseRight(right, k), k)
	return rc << shift
}

// Canonical returns the lexicographically smaller of code and its reverse
// complement (both left-justified, both length k).
func Canonical(code uint64, k int) uint64 {
	rc := RC(code, k)
	if rc < code {
		return rc
	}
	return code
}

// VariantsLastBase returns the four k-mers obtained by overwriting the
// last base (the lowest two bits of the left-justified field) with each of
// A, C, G, T, in that order. Used by the denoiser (§4.7) and starting-read
// cleaning (§4.9) to propose single-base error corrections in place.
func VariantsLastBase(code uint64, k int) [4]uint64 {
	shift := uint(64 - 2*k)
	cleared := code &^ (uint64(3) << shift)
	var out [4]uint64
	for v := 0; v < 4; v++ {
		out[v] = cleared | (uint64(v) << shift)
	}
	return out
}

// NextKmers returns the four 32-mers obtained by sliding the window one
// base forward with each of A, C, G, T as the incoming base (spec §4.10
// step 3). Graph-walk k-mers are always full 32-mers, so unlike ShiftIn
// this never needs a k parameter: the window already fills the word.
func NextKmers(code uint64) [4]uint64 {
	var out [4]uint64
	for v := 0; v < 4; v++ {
		out[v] = (code << 2) | uint64(v)
	}
	return out
}

// HashPair hashes two 32-mers into the single u64 a ContextTable keys on:
// canonical(canonical(a) xor canonical(b), 32) (spec §4.8).
func HashPair(a, b uint64) uint64 {
	ca := Canonical(a, 32)
	cb := Canonical(b, 32)
	return Canonical(ca^cb, 32)
}

// HomopolymerHead10 reports whether the first 10 bases of seq[offset:] are
// a single-letter run (spec §4.4/§4.12). seq must have at least 10 bytes
// remaining from offset.
func HomopolymerHead10(seq []byte, offset int) bool {
	first := upper(seq[offset])
	if first != 'A' && first != 'C' && first != 'G' && first != 'T' {
		return false
	}
	for i := 1; i < 10; i++ {
		if upper(seq[offset+i]) != first {
			return false
		}
	}
	return true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
