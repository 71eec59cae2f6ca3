// Package s3 provides a blobstore.Store backed by AWS S3.
package s3
