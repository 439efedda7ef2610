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

// Stats accumulates per-run counters, surfaced through cmd/run.go's -stats
// flag. None of these feed back into the algorithm; they exist purely to
// let a user judge whether a run behaved reasonably.
type Stats struct {
	InputReads    int
	PrimerMatches int

	// RegionFilterGrowth is the per-iteration new-read count from every
	// input file's region-filter fixed-point growth (spec §4.4), in file
	// order, so a runaway stop is visible after the fact.
	RegionFilterGrowth []int

	RefinedFilterSize int
	Selected          int
	StartingReads     int

	CleanFailed int
	Rescued     int

	Dropped  int
	Emitted  int
	Distinct int
}

func newStats() Stats {
	return Stats{}
}
