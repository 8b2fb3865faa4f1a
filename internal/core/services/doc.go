// Package services implements the driving port interfaces.
// Services hold the ingestion and search logic and reach infrastructure only
// through the driven ports, so tests run them over the in-memory vector store
// and the hash embedder.
package services
