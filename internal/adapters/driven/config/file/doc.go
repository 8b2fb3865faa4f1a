// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML (default) or YAML configuration storage
//   - UploadStore: the flat directory holding uploaded documents
package file
