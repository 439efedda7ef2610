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

import "testing"

// periodicACGT returns an n-base ACGT-repeat sequence, used instead of a
// hand-counted literal wherever a test needs an exact length.
func periodicACGT(n int) []byte {
	pattern := []byte("ACGT")
	out := make([]byte, n)
	for i := range out {
		out[i] = pattern[i%4]
	}
	return out
}

var seqNoStop = periodicACGT(40)

func TestTileAndAddNoStops(t *testing.T) {
	rf := NewRegionFilter()
	rf.tileAndAdd(seqNoStop)
	// the period-4 fixture's 9 windows are only 4 distinct strings
	if want := 4; rf.Len() != want {
		t.Fatalf("got %d starting k-mers, want %d", rf.Len(), want)
	}
	if !rf.HasPrefix(seqNoStop, 1) {
		t.Error("expected the read's own first 32-mer to be in its own filter")
	}
}

func TestTileAndAddStopsOnHomopolymer(t *testing.T) {
	seq := append(append([]byte{}, []byte("AAAAAAAAAA")...), periodicACGT(30)...)
	rf := NewRegionFilter()
	rf.tileAndAdd(seq)
	if rf.Len() != 0 {
		t.Errorf("expected a homopolymer-starting window to stop growth immediately, got %d entries", rf.Len())
	}
}

func TestTileAndAddStopsOnEndingFilter(t *testing.T) {
	seq := seqNoStop
	stopCode, clean := PackKmer(seq, 3, 32)
	if !clean {
		t.Fatal("fixture window unexpectedly dirty")
	}
	rf := NewRegionFilter()
	rf.AddEnding(stopCode)
	rf.tileAndAdd(seq)
	if rf.Len() != 3 {
		t.Errorf("expected growth to stop at offset 3 (3 entries added), got %d", rf.Len())
	}
}

func TestHasPrefixRespectsN(t *testing.T) {
	rf := NewRegionFilter()
	rf.tileAndAdd(seqNoStop)
	// a "TTTT" prefix pushes the filter-seeded window out to offset 4,
	// invisible at n=1 but reachable once n covers that offset.
	probe := append(append([]byte{}, []byte("TTTT")...), seqNoStop[:36]...)
	if rf.HasPrefix(probe, 1) {
		t.Error("HasPrefix(n=1) should only check offset 0")
	}
	if !rf.HasPrefix(probe, 5) {
		t.Error("HasPrefix(n=5) should find the match within the first 5 positions")
	}
}

func TestBuildRegionFilterGrowsAcrossReads(t *testing.T) {
	read1 := ReadRecord{Header: "r1", Seq: append([]byte{}, seqNoStop...), Tag: FP}
	read2Seq := append(append([]byte{}, seqNoStop[4:]...), []byte("TTTT")...)
	read2 := ReadRecord{Header: "r2", Seq: read2Seq, Tag: NoTag}

	rf, processed, growth := BuildRegionFilter([]ReadRecord{read1, read2}, nil)
	if !processed[0] || !processed[1] {
		t.Fatalf("expected both reads processed, got %v", processed)
	}
	if len(growth) != 1 || growth[0] != 1 {
		t.Errorf("expected one growth round admitting 1 read, got %v", growth)
	}
	if rf.Len() == 0 {
		t.Error("expected a non-empty region filter")
	}
}

func TestBuildRegionFilterSkipsUntaggedReads(t *testing.T) {
	untagged := ReadRecord{Header: "u", Seq: append([]byte{}, seqNoStop...), Tag: NoTag}
	rf, processed, growth := BuildRegionFilter([]ReadRecord{untagged}, nil)
	if processed[0] {
		t.Error("an untagged read with no matching prefix must never be marked processed")
	}
	if rf.Len() != 0 || len(growth) != 0 {
		t.Error("an untagged, unmatched read must not contribute to the filter")
	}
}

func TestRefineRegionFiltersCanonicalCulling(t *testing.T) {
	// not its own reverse complement (ACGT repeats are)
	kmer, _ := PackKmer([]byte("ACGGATCCTTAGCATGCAAGTCGACTTGAACC"), 0, 32)
	kmerRC := RC(kmer, 32)
	kmerStr := string(UnpackKmer(kmer, 32))
	kmerRCStr := string(UnpackKmer(kmerRC, 32))

	f1 := NewRegionFilter()
	f1.starting[kmerStr] = struct{}{} // no RC present
	refined := RefineRegionFilters([]*RegionFilter{f1}, false)
	if _, ok := refined.starting[kmerStr]; ok {
		t.Error("a k-mer without its RC present anywhere must be culled")
	}

	f2 := NewRegionFilter()
	f2.starting[kmerStr] = struct{}{}
	f2.starting[kmerRCStr] = struct{}{}
	refined = RefineRegionFilters([]*RegionFilter{f2}, false)
	if _, ok := refined.starting[kmerStr]; !ok {
		t.Error("a k-mer whose RC is also present must survive canonical culling")
	}
}

func TestRefineRegionFiltersStrictMode(t *testing.T) {
	kmer, _ := PackKmer([]byte("ACGTACGTACGTACGTACGTACGTACGTACGT"), 0, 32)
	kmerRC := RC(kmer, 32)
	kmerStr := string(UnpackKmer(kmer, 32))
	kmerRCStr := string(UnpackKmer(kmerRC, 32))

	f1 := NewRegionFilter()
	f1.starting[kmerStr] = struct{}{}
	f1.starting[kmerRCStr] = struct{}{}
	f2 := NewRegionFilter() // does not see this k-mer in either orientation

	refined := RefineRegionFilters([]*RegionFilter{f1, f2}, true)
	if _, ok := refined.starting[kmerStr]; ok {
		t.Error("strict mode must drop a k-mer absent from one of the per-file filters")
	}

	f2.starting[kmerRCStr] = struct{}{}
	refined = RefineRegionFilters([]*RegionFilter{f1, f2}, true)
	if _, ok := refined.starting[kmerStr]; !ok {
		t.Error("strict mode must keep a k-mer present (in either orientation) in every per-file filter")
	}
}
