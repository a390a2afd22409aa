package capgains

import (
	"bytes"
	"io"
	"iter"
	"slices"
	"strings"
)

// reverseChunk is the size of the blocks read from the end of the file.
const reverseChunk = 4096

// ReverseLines returns the non-empty lines of r from the last to the first,
// reading r backwards by blocks, so that the tail of a large file is available
// without loading it fully.
func ReverseLines(r io.ReaderAt, size int64) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		buf := make([]byte, reverseChunk)
		var partial []byte // beginning of the line is not read yet
		emit := func(line string) bool {
			line = strings.TrimSuffix(line, "\r")
			if line == "" {
				return true
			}
			return yield(line, nil)
		}

		for end := size; end > 0; {
			start := max(0, end-reverseChunk)
			chunk := buf[:end-start]
			if _, err := r.ReadAt(chunk, start); err != nil && err != io.EOF {
				yield("", err)
				return
			}
			for {
				i := bytes.LastIndexByte(chunk, '\n')
				if i < 0 {
					partial = append(slices.Clone(chunk), partial...)
					break
				}
				line := string(chunk[i+1:]) + string(partial)
				partial = nil
				chunk = chunk[:i]
				if !emit(line) {
					return
				}
			}
			end = start
		}
		emit(string(partial))
	}
}
