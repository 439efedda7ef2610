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
	"io"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	ipcr "github.com/shenwei356/ipcr"
	"github.com/spf13/cobra"
)

func runIPCR(cmd *cobra.Command, args []string) {
	opt := getOptions(cmd)
	runtime.GOMAXPROCS(opt.NumCPUs)
	seq.ValidateSeq = false

	forward := getFlagString(cmd, "forward")
	reverse := getFlagString(cmd, "reverse")

	ipcrOpt := ipcr.DefaultOptions()
	ipcrOpt.ForwardPrimer = forward
	ipcrOpt.ReversePrimer = reverse
	ipcrOpt.Paired = getFlagBool(cmd, "paired")
	ipcrOpt.Unpaired = getFlagBool(cmd, "unpaired")
	ipcrOpt.Strict = getFlagBool(cmd, "strict")
	ipcrOpt.MinLength = getFlagNonNegativeInt(cmd, "min")
	ipcrOpt.MaxLength = getFlagNonNegativeInt(cmd, "max")
	ipcrOpt.MinDepth = getFlagPositiveInt(cmd, "mindepth")
	ipcrOpt.MaxReadLength = getFlagNonNegativeInt(cmd, "maxreadlength")
	ipcrOpt.Threads = opt.NumCPUs
	ipcrOpt.Seed = getFlagInt64(cmd, "seed")
	if opt.Verbose {
		ipcrOpt.Log = func(format string, a ...interface{}) { log.Infof(format, a...) }
	}

	if err := ipcrOpt.Validate(); err != nil {
		checkError(err)
	}

	files := getFileListFromArgsAndFile(cmd, args, "infile-list")
	checkFiles(files...)
	if err := checkPairing(ipcrOpt, len(files)); err != nil {
		checkError(err)
	}

	fileReads := make([]ipcr.FileReads, 0, len(files))
	for _, file := range files {
		if opt.Verbose {
			log.Infof("reading %s", file)
		}
		records, err := readFASTX(file)
		checkError(errors.Wrapf(err, "reading %s", file))
		fileReads = append(fileReads, ipcr.FileReads{Name: file, Reads: records})
	}

	result, err := ipcr.Run(ipcrOpt, fileReads)
	checkError(err)

	outFile := getFlagString(cmd, "out-file")
	n, err := ipcr.WriteFASTA(outFile, result.Amplicons)
	checkError(err)
	if opt.Verbose {
		log.Infof("wrote %s distinct amplicons to %s", humanize.Comma(int64(n)), outFile)
	}

	if save := getFlagString(cmd, "save"); save != "" {
		checkError(writeDiagnostics(save, result.Stats))
	}
	if getFlagBool(cmd, "stats") {
		printStats(result.Stats)
	}
}

// readFASTX loads every record of one FASTA/FASTQ file into core read
// records, upper-casing sequence as the core expects.
func readFASTX(file string) ([]ipcr.ReadRecord, error) {
	reader, err := fastx.NewDefaultReader(file)
	if err != nil {
		return nil, err
	}
	var out []ipcr.ReadRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		s := append([]byte(nil), record.Seq.Seq...)
		for i, b := range s {
			if b >= 'a' && b <= 'z' {
				s[i] = b - ('a' - 'A')
			}
		}
		rec := ipcr.ReadRecord{
			Header: string(record.Name),
			Seq:    s,
		}
		if len(record.Seq.Qual) > 0 {
			rec.Qual = append([]byte(nil), record.Seq.Qual...)
		}
		out = append(out, rec)
	}
	return out, nil
}

// checkPairing applies spec §4.1's file-count rule for -paired.
func checkPairing(opt ipcr.Options, n int) error {
	if opt.Paired && n%2 != 0 {
		return fmt.Errorf("ipcr: -paired requires an even number of input files, got %d", n)
	}
	return nil
}
