package hash

import (
	"encoding/binary"

	"github.com/medakadb/medakadb/types"
	"github.com/spaolacci/murmur3"
)

// HashValue returns the hash of a column value. Values that compare equal
// serialize identically, so their hashes agree, which is what the
// aggregation group tables rely on.
func HashValue(val *types.Value) uint32 {
	switch val.ValueType() {
	case types.Integer, types.Varchar:
		return GenHashMurMur(val.Serialize())
	default:
		panic("not supported type!")
	}
}

// HashFilePath derives a heap file id from the absolute path of its backing
// file. Collisions are possible and accepted; they are not resolved.
func HashFilePath(absPath string) uint32 {
	return GenHashMurMur([]byte(absPath))
}

func GenHashMurMur(key []byte) uint32 {
	h := murmur3.New128()
	h.Write(key)
	hash := h.Sum(nil)
	return binary.LittleEndian.Uint32(hash)
}
