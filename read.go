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

// Tag records which primer a read's scan matched, and where (spec §4.3).
type Tag int

const (
	// NoTag means neither a starting nor a terminating primer was found.
	NoTag Tag = iota
	// FP means the forward primer matched at the read's start; the read
	// is already forward-oriented and used as a starting read unchanged.
	FP
	// RP means RC(reverse primer) matched at the read's start. The read
	// seeds region-filter/ending-filter construction but is not promoted
	// to a starting read (see DESIGN.md for why only FP/FP' reads seed
	// extension).
	RP
	// FPPrime means RC(forward primer) matched at the read's end. The
	// read is reverse-complemented before use so it becomes forward
	// oriented, equivalent to an FP read (spec §4.6).
	FPPrime
	// RPPrime means the reverse primer matched at the read's end.
	RPPrime
)

func (t Tag) String() string {
	switch t {
	case FP:
		return "FP"
	case RP:
		return "RP"
	case FPPrime:
		return "FP'"
	case RPPrime:
		return "RP'"
	default:
		return "-"
	}
}

// ReadRecord is one FASTA/FASTQ record carried through the pipeline (spec
// §3). Seq is always upper-cased ACGTN; Qual is nil for FASTA input.
type ReadRecord struct {
	Header string
	Seq    []byte
	Qual   []byte

	// Tag and Pos are filled in by Scan; Pos is the read-relative offset
	// the matching primer window started at.
	Tag Tag
	Pos int
}

// RC returns a copy of r with Seq reverse-complemented and Qual reversed.
// Header is left unchanged.
func (r ReadRecord) RC() ReadRecord {
	out := ReadRecord{Header: r.Header, Tag: r.Tag, Pos: r.Pos}
	out.Seq = reverseComplementSeq(r.Seq)
	if r.Qual != nil {
		out.Qual = make([]byte, len(r.Qual))
		n := len(r.Qual)
		for i, q := range r.Qual {
			out.Qual[n-1-i] = q
		}
	}
	return out
}

var complementByte = [256]byte{}

func init() {
	for i := range complementByte {
		complementByte[i] = byte(i)
	}
	complementByte['A'], complementByte['a'] = 'T', 't'
	complementByte['T'], complementByte['t'] = 'A', 'a'
	complementByte['C'], complementByte['c'] = 'G', 'g'
	complementByte['G'], complementByte['g'] = 'C', 'c'
}

func reverseComplementSeq(seq []byte) []byte {
	out := make([]byte, len(seq))
	n := len(seq)
	for i, b := range seq {
		out[n-1-i] = complementByte[b]
	}
	return out
}
