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

// SelectReads implements spec §4.6: a read is selected iff its first
// 32-mer, or one of its first 5 positions, matches the refined region
// filter. Selected reads keep whatever tag they earned during the primer
// scan; FP'-tagged reads are reverse-complemented here so every surviving
// read that could seed an extension begins with the forward primer.
func SelectReads(reads []ReadRecord, refined *RegionFilter) []ReadRecord {
	var out []ReadRecord
	for _, r := range reads {
		if !refined.HasPrefix(r.Seq, 5) {
			continue
		}
		if r.Tag == FPPrime {
			r = r.RC()
		}
		out = append(out, r)
	}
	return out
}

// StartingReads narrows a selected-read set down to the reads usable as
// extension seeds: those tagged FP, or FP' (already reverse-complemented
// by SelectReads). RP/RP' reads still contribute to the depth and context
// tables but are never extended directly — see DESIGN.md's resolution of
// spec §4.2's "forward-primer set tracks both forms" note.
func StartingReads(selected []ReadRecord) []ReadRecord {
	var out []ReadRecord
	for _, r := range selected {
		if r.Tag == FP || r.Tag == FPPrime {
			out = append(out, r)
		}
	}
	return out
}
