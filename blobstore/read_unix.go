//go:build unix

package blobstore

import (
	"os"

	"golang.org/x/sys/unix"
)

// readFile maps the file and copies it out in a single operation. Empty
// files cannot be mapped and fall through to the portable path.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := int(fi.Size())
	if size == 0 {
		return []byte{}, nil
	}

	mapped, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		// Mapping can fail on exotic filesystems; fall back to a plain read.
		return os.ReadFile(path)
	}
	defer unix.Munmap(mapped)

	// The snapshot is decoded after the store call returns, so the mapping
	// cannot outlive this function; hand back a copy.
	data := make([]byte, size)
	copy(data, mapped)

	return data, nil
}
