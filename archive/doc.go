// Package archive persists solve-run records as compressed blobs.
//
// A Record captures one solve: the submitted problem entries, the decoded
// assignments, and the solver diagnostics. Records are JSON-encoded,
// block-compressed, and written through a Store. The Writer archives records
// asynchronously on a fixed worker pool; archival failures are logged and
// counted but never fail a solve.
//
// Store implementations: MemoryStore for tests, LocalStore for plain
// filesystems, and the minio and s3 subpackages for object storage.
package archive
