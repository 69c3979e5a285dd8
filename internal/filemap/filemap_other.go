//go:build !unix

package filemap

import (
	"fmt"
	"os"
)

// Open reads path into memory in full. Non-unix targets have no portable
// mmap primitive in this engine's dependency set, so the file mapper falls
// back to a single read; every downstream component still sees a plain
// []byte and is otherwise unaffected.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("filemap: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, errEmptyFile(path)
	}
	return &Mapping{data: data}, nil
}
