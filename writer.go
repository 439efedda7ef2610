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

import (
	"fmt"

	"github.com/shenwei356/xopen"
	"github.com/twotwotwo/sorts/sortutil"
)

// WriteFASTA writes amplicons to outFile (xopen-aware: "-" is stdout, a
// ".gz" suffix gzips), sequences sorted so two runs over the same input
// always agree on record order, each as one line headed ">R<n>" (spec
// §6: the header carries a running integer only, depth is reported
// separately via -save/-stats).
func WriteFASTA(outFile string, entries []AmpliconEntry) (int, error) {
	seqs := make([]string, len(entries))
	for i, e := range entries {
		seqs[i] = e.Seq
	}
	sortutil.Strings(seqs)

	outfh, err := xopen.Wopen(outFile)
	if err != nil {
		return 0, err
	}
	defer outfh.Close()

	for i, s := range seqs {
		if _, err := fmt.Fprintf(outfh, ">R%d\n%s\n", i+1, s); err != nil {
			return i, err
		}
	}
	return len(seqs), nil
}
