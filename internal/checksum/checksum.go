// Package checksum fingerprints note content.
package checksum

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Sum returns the 16 hex character xxh3 digest of content.
func Sum(content string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(content))
}
