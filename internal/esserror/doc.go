// Package esserror provides error inspection capabilities for Elasticsearch errors.
// It centralizes the logic for identifying authentication, missing-index, malformed
// query and connectivity failures, whether they arrive as HTTP error responses or
// as transport errors from the client, so callers can map them to exit codes.
package esserror
