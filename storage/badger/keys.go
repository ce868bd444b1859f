package badger

import "github.com/poiesic/cilin/core"

// Key prefixes for different data types
const (
	entryPrefix    = "entry:"
	metaPrefix     = "meta:"
	fingerprintKey = metaPrefix + "fingerprint"
)

// makeEntryKey generates a key for a taxonomy entry by code.
// Codes share a fixed width so key order equals code order.
func makeEntryKey(code core.Code) []byte {
	return []byte(entryPrefix + string(code))
}

// codeFromEntryKey extracts the code from an entry key.
func codeFromEntryKey(key []byte) core.Code {
	return core.Code(key[len(entryPrefix):])
}
