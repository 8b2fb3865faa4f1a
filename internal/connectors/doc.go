// Package connectors provides the document sources docvec ingests from.
// The filesystem connector lists the files of a directory and watches it
// for changes.
package connectors
