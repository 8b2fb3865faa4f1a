package domain

import (
	"crypto/md5" //nolint:gosec // G501: identifiers, not security
	"encoding/hex"
	"strconv"
	"strings"
)

// PointID returns the deterministic identifier for a chunk of a document.
//
// The id is the hex MD5 digest of lowercase(title) + "::" + chunkIndex. It
// depends only on the title and the chunk position, never on chunk text, so
// re-ingesting a file overwrites its points in place.
func PointID(title string, chunkIndex int) string {
	raw := strings.ToLower(title) + "::" + strconv.Itoa(chunkIndex)
	sum := md5.Sum([]byte(raw)) //nolint:gosec // G401
	return hex.EncodeToString(sum[:])
}
