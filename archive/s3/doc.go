// Package s3 provides an archive.Store backed by Amazon S3 plus a
// DynamoDB-backed run ledger.
//
// The ledger gives archived runs what S3 alone cannot: an atomically
// versioned, per-schedule history. Concurrent solvers appending runs for the
// same schedule are serialized by DynamoDB conditional writes.
package s3
