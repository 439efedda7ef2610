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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFASTASortsAndHeadersWithRunningInteger(t *testing.T) {
	entries := []AmpliconEntry{
		{Seq: "TTTT", Count: 1},
		{Seq: "AAAA", Count: 3},
		{Seq: "GGGG", Count: 2},
	}
	outFile := filepath.Join(t.TempDir(), "out.fasta")

	n, err := WriteFASTA(outFile, entries)
	if err != nil {
		t.Fatalf("WriteFASTA returned an error: %v", err)
	}
	if n != 3 {
		t.Errorf("got %d records written, want 3", n)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read back %s: %v", outFile, err)
	}

	want := ">R1\nAAAA\n>R2\nGGGG\n>R3\nTTTT\n"
	if got := string(data); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteFASTAEmpty(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "empty.fasta")
	n, err := WriteFASTA(outFile, nil)
	if err != nil {
		t.Fatalf("WriteFASTA returned an error: %v", err)
	}
	if n != 0 {
		t.Errorf("got %d, want 0", n)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read back %s: %v", outFile, err)
	}
	if strings.TrimSpace(string(data)) != "" {
		t.Errorf("expected an empty file, got %q", data)
	}
}

func TestWriteFASTAGzipSuffix(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.fasta.gz")
	n, err := WriteFASTA(outFile, []AmpliconEntry{{Seq: "ACGT", Count: 1}})
	if err != nil {
		t.Fatalf("WriteFASTA returned an error: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d, want 1", n)
	}
	info, err := os.Stat(outFile)
	if err != nil {
		t.Fatalf("expected the gzipped output file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty gzip file")
	}
}
