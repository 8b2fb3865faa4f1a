// Package extractors provides implementations of the Extractor interface
// for the supported file formats. Each extractor knows how to read text out
// of specific file extensions; the plain text extractor is the fallback for
// everything else.
//
// Extractors are registered with the Registry at startup.
package extractors
