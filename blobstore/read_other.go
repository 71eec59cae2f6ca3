//go:build !unix

package blobstore

import "os"

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
