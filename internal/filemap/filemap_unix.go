//go:build unix

package filemap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps path read-only via mmap(2). The mapping is advised MADV_SEQUENTIAL
// since every chunk worker scans forward through its slice exactly once.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filemap: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("filemap: stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return nil, errEmptyFile(path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("filemap: mmap %s: %w", path, err)
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &Mapping{
		data: data,
		closer: func() error {
			return unix.Munmap(data)
		},
	}, nil
}
