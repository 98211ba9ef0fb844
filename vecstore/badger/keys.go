package badger

import (
	"fmt"
	"strings"

	"github.com/veldt/corpusqa/core"
)

// Key prefixes for different data types
const (
	manifestPrefix = "vidxman"
	vectorPrefix   = "vidxvec"
)

// makeManifestKey generates the manifest key for a named index.
func makeManifestKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", manifestPrefix, name))
}

// nameFromManifestKey recovers the index name from a manifest key.
func nameFromManifestKey(key []byte) string {
	return strings.TrimPrefix(string(key), manifestPrefix+":")
}

// makeVectorPrefix generates the key prefix shared by all vector records
// of a named index.
func makeVectorPrefix(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", vectorPrefix, name))
}

// makeVectorKey generates the key for one chunk's vector record.
func makeVectorKey(name string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", vectorPrefix, name, id))
}
