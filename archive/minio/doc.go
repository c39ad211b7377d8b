// Package minio provides an archive.Store backed by MinIO or any
// S3-compatible object store reachable through the MinIO SDK.
package minio
