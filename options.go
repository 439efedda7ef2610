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

// Options carries the CLI-independent configuration of one run. It is
// deliberately free of any cobra/cli dependency so the core can be driven
// from a test or another program.
type Options struct {
	ForwardPrimer string
	ReversePrimer string

	Paired   bool // cmd/run.go rejects an odd file count; files are not grouped into mates
	Unpaired bool // only checked for a conflict with Paired; no other effect
	Strict   bool // strict filter refinement (paired cross-file intersection)

	MinLength int // 0 = no floor; otherwise must be >= 40
	MaxLength int // 0 = unlimited; otherwise must be >= 40

	MinDepth      int // default 2
	MaxReadLength int // 0 = derive from input

	Threads int // set by cmd/run.go from --threads; Run does not read it and runs on one goroutine

	// Seed, if non-zero, makes the look-ahead engine's coin-toss choice
	// reproducible across runs (spec §9).
	Seed int64

	// Log receives one line per cleaning/extension/drop decision when
	// non-nil. The core never constructs a concrete logger; cmd/run.go
	// wires this to go-logging when -v/--verbose is given.
	Log func(format string, args ...interface{})
}

// DefaultOptions returns an Options with the spec's documented defaults.
func DefaultOptions() Options {
	return Options{
		MinDepth: 2,
		Threads:  1,
	}
}

// logf calls opt.Log if set; otherwise it is a no-op.
func (opt *Options) logf(format string, args ...interface{}) {
	if opt.Log != nil {
		opt.Log(format, args...)
	}
}

// Validate checks the invariants spec.md §6/§7 place on the numeric flags.
// It does not check ForwardPrimer/ReversePrimer for IUPAC validity — that
// happens when primer.go tries to expand them.
func (opt Options) Validate() error {
	if opt.ForwardPrimer == "" || opt.ReversePrimer == "" {
		return ErrNoPrimers
	}
	if opt.MinLength != 0 && opt.MinLength < 40 {
		return ErrMinLengthTooShort
	}
	if opt.MaxLength != 0 && opt.MaxLength < 40 {
		return ErrMaxLengthTooShort
	}
	if opt.MinDepth < 1 {
		return ErrMinDepthTooSmall
	}
	if opt.Paired && opt.Unpaired {
		return ErrPairedUnpairedConflict
	}
	return nil
}
