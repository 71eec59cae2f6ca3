// Package blobstore provides storage backends for index snapshots:
// local filesystem, in-memory (tests), and S3-compatible object stores via
// the minio and s3 subpackages.
package blobstore
