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
	"path/filepath"
	"runtime"

	"github.com/shenwei356/breader"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

// VERSION is the tool's release version.
const VERSION = "0.1.0"

// Options holds the persistent, toolkit-wide flags.
type Options struct {
	NumCPUs int
	Verbose bool
}

func getOptions(cmd *cobra.Command) *Options {
	return &Options{
		NumCPUs: getFlagPositiveInt(cmd, "threads"),
		Verbose: getFlagBool(cmd, "verbose"),
	}
}

func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "ipcr:", err)
		os.Exit(1)
	}
}

func getFlagString(cmd *cobra.Command, flag string) string {
	value, err := cmd.Flags().GetString(flag)
	checkError(err)
	return value
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return value
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return value
}

func getFlagPositiveInt(cmd *cobra.Command, flag string) int {
	value := getFlagInt(cmd, flag)
	if value <= 0 {
		checkError(fmt.Errorf("value of flag --%s should be > 0", flag))
	}
	return value
}

func getFlagNonNegativeInt(cmd *cobra.Command, flag string) int {
	value := getFlagInt(cmd, flag)
	if value < 0 {
		checkError(fmt.Errorf("value of flag --%s should be >= 0", flag))
	}
	return value
}

func getFlagInt64(cmd *cobra.Command, flag string) int64 {
	value, err := cmd.Flags().GetInt64(flag)
	checkError(err)
	return value
}

func isStdin(file string) bool {
	return file == "-"
}

func isStdout(file string) bool {
	return file == "-" || file == ""
}

// getListFromFile reads one whitespace-trimmed, non-empty entry per line.
func getListFromFile(file string) ([]string, error) {
	reader, err := breader.NewDefaultBufferedReader(file)
	if err != nil {
		return nil, err
	}
	var list []string
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		for _, data := range chunk.Data {
			line := data.(string)
			if line == "" {
				continue
			}
			list = append(list, line)
		}
	}
	return list, nil
}

// getFileList expands shell-style glob patterns in args, defaulting to
// stdin ("-") when no argument is given. Non-glob paths that exist are
// passed through unchanged so plain filenames with special characters
// still work.
func getFileList(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	var files []string
	for _, arg := range args {
		if isStdin(arg) {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		checkError(err)
		if len(matches) == 0 {
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files
}

// getFileListFromArgsAndFile resolves the input file list: the
// --infile-list file, if given, takes priority over cli arguments.
func getFileListFromArgsAndFile(cmd *cobra.Command, args []string, infileListFlag string) []string {
	listFile := getFlagString(cmd, infileListFlag)
	if listFile != "" {
		files, err := getListFromFile(listFile)
		checkError(err)
		return files
	}
	return getFileList(args)
}

// checkFiles verifies every named file exists (stdin "-" is always OK).
func checkFiles(files ...string) {
	for _, file := range files {
		if isStdin(file) {
			continue
		}
		ok, err := pathutil.Exists(file)
		checkError(err)
		if !ok {
			checkError(fmt.Errorf("file does not exist: %s", file))
		}
	}
}

func defaultThreads() int {
	n := runtime.NumCPU()
	if n > 2 {
		return 2
	}
	return n
}
