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

	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("ipcr")

// RootCmd is ipcr's single command: unlike a multi-tool kit, the whole
// engine runs as one invocation, so every flag lives on the root command
// rather than on a subcommand.
var RootCmd = &cobra.Command{
	Use:   "ipcr",
	Short: "reconstruct full-length amplicons from WGS reads and a primer pair",
	Long: fmt.Sprintf(`ipcr - in-silico PCR amplicon reconstruction

Given a forward/reverse IUPAC primer pair and a set of whole-genome
shotgun FASTA/FASTQ reads, ipcr locates primer-carrying reads, grows a
k-mer region filter around the primer pair, builds a denoised depth
table and pair-context tables from the selected reads, and walks the
k-mer graph from every starting read to reconstruct full-length
inter-primer amplicons.

Version: %s

Author: Wei Shen <shenwei356@gmail.com>

`, VERSION),
	Run: runIPCR,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.Flags().StringP("forward", "f", "", "forward primer sequence (IUPAC degenerate bases allowed)")
	RootCmd.Flags().StringP("reverse", "r", "", "reverse primer sequence (IUPAC degenerate bases allowed)")

	RootCmd.Flags().BoolP("paired", "", false, "require an even number of input files (files are not grouped into mates)")
	RootCmd.Flags().BoolP("unpaired", "", false, "mutually exclusive with --paired; every input file already gets its own region filter")
	RootCmd.Flags().BoolP("strict", "", false, "require a region-filter k-mer to appear, in either orientation, in every sample's filter")

	RootCmd.Flags().IntP("min", "m", 0, "minimum amplicon length to keep when it never reached a terminal primer (0 = no floor)")
	RootCmd.Flags().IntP("max", "M", 0, "maximum amplicon length; longer amplicons are discarded (0 = unlimited)")
	RootCmd.Flags().IntP("mindepth", "d", 2, "minimum depth used when deriving the noise/mean depth levels")
	RootCmd.Flags().IntP("maxreadlength", "", 0, "longest context-table pair length; 0 derives it from the input reads")

	RootCmd.Flags().Int64P("seed", "", 0, "seed for the extension engine's coin-toss tie-break (0 = time-seeded)")

	RootCmd.Flags().StringP("out-file", "o", "-", "output FASTA file ('-' for stdout)")
	RootCmd.Flags().StringP("save", "", "", "write the run's diagnostic counters (including per-iteration region-filter growth) to this file")
	RootCmd.Flags().BoolP("stats", "", false, "print run statistics to stderr")

	RootCmd.Flags().StringP("infile-list", "i", "", "file of input files list (one file per line); overrides cli arguments")

	RootCmd.PersistentFlags().IntP("threads", "j", defaultThreads(), "number of CPUs to use")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "print verbose progress information")
}
