// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: Maps text to fixed-dimension vectors (Ollama, OpenAI, Gemini, hash)
//   - VectorStore: Collections of points with similarity search (Qdrant, SQLite, chromem, memory)
//   - Extractor / ExtractorRegistry: Reads page text out of files (plain text, PDF)
//   - Chunker: Splits text into chunks by strategy
//   - FileSource / Watcher: Lists and watches a directory of files
//   - UploadStore: The upload area used by the MCP server and CLI
//   - ConfigStore: Application configuration
//   - AIConfigValidator: Checks that an embedding provider is reachable
//
// All interfaces are required. Tests substitute the in-memory store and the
// hash embedder rather than passing nil.
package driven
