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

// ScanPrimers slides a length-M window across seq, packing incrementally,
// and returns the tag and offset of the first position matching either a
// starting or a terminating primer variant (spec §4.3). Starting and
// terminating variants are checked together at each position, so the first
// hit — in either role — wins the tie; among several candidate sets
// matching the very same packed code, FP is preferred over RP over FP'
// over RP' (an ordering that only matters for deliberately overlapping
// degenerate primers).
func ScanPrimers(ps *PrimerSet, seq []byte) (tag Tag, pos int, found bool) {
	m := ps.Length
	if len(seq) < m {
		return NoTag, 0, false
	}
	t := NewTiler(seq, m)
	for {
		code, offset, clean, ok := t.Next()
		if !ok {
			break
		}
		if !clean {
			continue
		}
		switch {
		case ps.MatchForward(code):
			return FP, offset, true
		case ps.MatchReverseRC(code):
			return RP, offset, true
		case ps.MatchForwardRC(code):
			return FPPrime, offset, true
		case ps.MatchReverse(code):
			return RPPrime, offset, true
		}
	}
	return NoTag, 0, false
}

// TrimAtPrimer applies spec §4.3's trim rule for a match ScanPrimers found.
// A starting match (FP/RP) trims the read to start at the primer; a
// terminating match (FP'/RP') trims the read to end at pos+M and, if 32
// bases are available, also returns the 32-mer ending at pos+M for the
// region filter's ending filter.
func TrimAtPrimer(seq []byte, m int, tag Tag, pos int) (trimmed []byte, endingKmer uint64, hasEnding bool) {
	switch tag {
	case FP, RP:
		return seq[pos:], 0, false
	case FPPrime, RPPrime:
		end := pos + m
		trimmed = seq[:end]
		if end >= 32 {
			code, clean := PackKmer(seq, end-32, 32)
			if clean {
				return trimmed, code, true
			}
		}
		return trimmed, 0, false
	default:
		return seq, 0, false
	}
}

// Scan runs ScanPrimers/TrimAtPrimer over one read and returns the tagged,
// trimmed record. matched is false if neither a starting nor a terminating
// primer was found, in which case rec is returned unchanged (spec §4.3: "a
// read that matches neither is deferred").
func Scan(ps *PrimerSet, rec ReadRecord) (out ReadRecord, endingKmer uint64, hasEnding bool, matched bool) {
	tag, pos, found := ScanPrimers(ps, rec.Seq)
	if !found {
		return rec, 0, false, false
	}
	trimmed, ek, hasEK := TrimAtPrimer(rec.Seq, ps.Length, tag, pos)
	out = rec
	out.Tag = tag
	out.Pos = pos
	out.Seq = trimmed
	if rec.Qual != nil {
		switch tag {
		case FP, RP:
			out.Qual = rec.Qual[pos:]
		case FPPrime, RPPrime:
			out.Qual = rec.Qual[:pos+ps.Length]
		}
	}
	return out, ek, hasEK, true
}
