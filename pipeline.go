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

// FileReads is one input file's already-parsed records, grouped the way
// spec §4.1/§4.4/§4.5 need: region-filter growth and (in paired mode)
// strict refinement both operate per-file before the results are pooled.
type FileReads struct {
	Name  string
	Reads []ReadRecord
}

// RunResult is the output of one complete Run: the dereplicated amplicons
// and the counters that went into producing them.
type RunResult struct {
	Amplicons []AmpliconEntry
	Stats     Stats
}

// Run drives the whole engine end to end (spec §4): primer scan, per-file
// region-filter growth and refinement, read selection, depth/context table
// construction, starting-read preparation (clean/extend-short/rescue),
// kMer-graph extension, and trim/filter/dereplicate.
func Run(opt Options, files []FileReads) (RunResult, error) {
	if err := opt.Validate(); err != nil {
		return RunResult{}, err
	}
	ps, err := NewPrimerSet(opt.ForwardPrimer, opt.ReversePrimer)
	if err != nil {
		return RunResult{}, err
	}

	stats := newStats()

	filters := make([]*RegionFilter, len(files))
	scannedFiles := make([][]ReadRecord, len(files))
	var allScanned []ReadRecord

	for fi, f := range files {
		scanned := make([]ReadRecord, 0, len(f.Reads))
		var endingKmers []uint64
		for _, r := range f.Reads {
			stats.InputReads++
			out, ek, hasEK, matched := Scan(ps, r)
			if matched {
				stats.PrimerMatches++
			}
			if hasEK {
				endingKmers = append(endingKmers, ek)
			}
			scanned = append(scanned, out)
		}

		rf, _, growth := BuildRegionFilter(scanned, endingKmers)
		stats.RegionFilterGrowth = append(stats.RegionFilterGrowth, growth...)

		filters[fi] = rf
		scannedFiles[fi] = scanned
		allScanned = append(allScanned, scanned...)
		opt.logf("file %s: region filter grown to %d 32-mers", f.Name, rf.Len())
	}

	refined := RefineRegionFilters(filters, opt.Strict)
	stats.RefinedFilterSize = refined.Len()
	opt.logf("refined region filter: %d 32-mers", refined.Len())

	selected := SelectReads(allScanned, refined)
	stats.Selected = len(selected)

	maxReadLength := opt.MaxReadLength
	if maxReadLength == 0 {
		for _, r := range selected {
			if len(r.Seq) > maxReadLength {
				maxReadLength = len(r.Seq)
			}
		}
	}
	if maxReadLength < 40 {
		maxReadLength = 40
	}

	dt := BuildDepthTable(selected, opt.MinDepth)
	cts := BuildContextTables(selected, dt, maxReadLength)
	opt.logf("depth table: noiseLevel=%.2f meanDepth=%.2f", dt.NoiseLevel, dt.MeanDepth)

	starting := StartingReads(selected)
	stats.StartingReads = len(starting)

	var nonStarting []ReadRecord
	for _, r := range selected {
		if r.Tag != FP && r.Tag != FPPrime {
			nonStarting = append(nonStarting, r)
		}
	}

	minExtendLen := 40 + ps.Length
	var prepared [][]byte
	for _, r := range starting {
		cleaned, ok := CleanStartingRead(r.Seq, dt, cts)
		if !ok {
			stats.CleanFailed++
			continue
		}
		prepared = append(prepared, ExtendShort(cleaned, dt, cts, minExtendLen))
	}

	sigs := BuildStartOfRegion(prepared, ps.Length)
	rescued := RescueReads(nonStarting, sigs, ps.Length)
	for _, r := range rescued {
		cleaned, ok := CleanStartingRead(r.Seq, dt, cts)
		if !ok {
			continue
		}
		prepared = append(prepared, ExtendShort(cleaned, dt, cts, minExtendLen))
		stats.Rescued++
	}
	opt.logf("prepared %d starting reads (%d rescued)", len(prepared), stats.Rescued)

	ext := NewExtender(dt, cts, ps)
	ext.Seed = opt.Seed
	multiset := NewExtendedReadsMultiset()
	for _, seq := range prepared {
		grown, reachedTP := ext.Extend(seq)
		trimmed, keep, _ := TrimAndFilter(grown, ps, reachedTP, opt.MinLength, opt.MaxLength)
		if !keep {
			stats.Dropped++
			continue
		}
		multiset.Add(trimmed)
		stats.Emitted++
	}
	stats.Distinct = multiset.Len()
	opt.logf("emitted %d amplicons (%d distinct, %d dropped)", stats.Emitted, stats.Distinct, stats.Dropped)

	return RunResult{Amplicons: multiset.Entries(), Stats: stats}, nil
}
