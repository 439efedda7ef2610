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

import "errors"

// ErrIllegalBase means a byte outside A/C/G/T (case-insensitive) was seen
// where a strict base was required.
var ErrIllegalBase = errors.New("ipcr: illegal base")

// ErrKOverflow means k is outside (0, 32].
var ErrKOverflow = errors.New("ipcr: k (1-32) overflow")

// ErrNoPrimers means both -f and -r are required.
var ErrNoPrimers = errors.New("ipcr: forward and reverse primers are both required")

// ErrMinLengthTooShort means -min was given below the 40bp floor.
var ErrMinLengthTooShort = errors.New("ipcr: -min must be 0 or >= 40")

// ErrMaxLengthTooShort means -max was given below the 40bp floor.
var ErrMaxLengthTooShort = errors.New("ipcr: -max must be >= 40")

// ErrMinDepthTooSmall means -mindepth was given below 1.
var ErrMinDepthTooSmall = errors.New("ipcr: -mindepth must be >= 1")

// ErrNoInputFiles means a file-name pattern matched nothing.
var ErrNoInputFiles = errors.New("ipcr: no input files matched")

// ErrOddPairedFiles means -paired was given with an odd file count.
var ErrOddPairedFiles = errors.New("ipcr: -paired requires an even number of input files")

// ErrPairedUnpairedConflict means both -paired and -unpaired were given.
var ErrPairedUnpairedConflict = errors.New("ipcr: -paired and -unpaired are mutually exclusive")
