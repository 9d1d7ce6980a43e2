// Package errors defines the typed application errors shared by the
// pipeline stages.
//
// File-access problems (missing input, unwritable output directory) are
// reported as ErrTypeFileAccess and always wrap the underlying OS error, so
// callers can still use errors.Is(err, fs.ErrNotExist). Malformed rows and
// non-numeric capacities are not errors; the loader and cleaner absorb them.
package errors
