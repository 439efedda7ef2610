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

package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	ipcr "github.com/shenwei356/ipcr"
)

// writeDiagnostics dumps the -save counters: the per-file region-filter
// growth curve plus the final summary, one value per line, gzipped when
// the path ends in .gz (outStream's convention, see util-io.go).
func writeDiagnostics(file string, stats ipcr.Stats) error {
	outfh, gw, w, err := outStream(file, hasGzSuffix(file))
	if err != nil {
		return err
	}
	defer func() {
		outfh.Flush()
		if gw != nil {
			gw.Close()
		}
		w.Close()
	}()

	fmt.Fprintf(outfh, "input_reads\t%d\n", stats.InputReads)
	fmt.Fprintf(outfh, "primer_matches\t%d\n", stats.PrimerMatches)
	for i, g := range stats.RegionFilterGrowth {
		fmt.Fprintf(outfh, "region_filter_growth\t%d\t%d\n", i+1, g)
	}
	fmt.Fprintf(outfh, "refined_filter_size\t%d\n", stats.RefinedFilterSize)
	fmt.Fprintf(outfh, "selected_reads\t%d\n", stats.Selected)
	fmt.Fprintf(outfh, "starting_reads\t%d\n", stats.StartingReads)
	fmt.Fprintf(outfh, "clean_failed\t%d\n", stats.CleanFailed)
	fmt.Fprintf(outfh, "rescued\t%d\n", stats.Rescued)
	fmt.Fprintf(outfh, "dropped\t%d\n", stats.Dropped)
	fmt.Fprintf(outfh, "emitted\t%d\n", stats.Emitted)
	fmt.Fprintf(outfh, "distinct\t%d\n", stats.Distinct)
	return nil
}

func hasGzSuffix(file string) bool {
	n := len(file)
	return n > 3 && file[n-3:] == ".gz"
}

// printStats reports the same counters to stderr for -stats, with large
// numbers humanized the way the rest of the toolkit does.
func printStats(stats ipcr.Stats) {
	fmt.Fprintf(os.Stderr, "input reads:       %s\n", humanize.Comma(int64(stats.InputReads)))
	fmt.Fprintf(os.Stderr, "primer matches:     %s\n", humanize.Comma(int64(stats.PrimerMatches)))
	fmt.Fprintf(os.Stderr, "refined filter:     %s 32-mers\n", humanize.Comma(int64(stats.RefinedFilterSize)))
	fmt.Fprintf(os.Stderr, "selected reads:     %s\n", humanize.Comma(int64(stats.Selected)))
	fmt.Fprintf(os.Stderr, "starting reads:     %s (%s rescued, %s failed cleaning)\n",
		humanize.Comma(int64(stats.StartingReads)), humanize.Comma(int64(stats.Rescued)), humanize.Comma(int64(stats.CleanFailed)))
	fmt.Fprintf(os.Stderr, "amplicons emitted:  %s (%s distinct, %s dropped)\n",
		humanize.Comma(int64(stats.Emitted)), humanize.Comma(int64(stats.Distinct)), humanize.Comma(int64(stats.Dropped)))
}
