package utils

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"hash"
)

// HashType describes a checksum algorithm the drive service understands.
type HashType struct {
	Name    string
	Width   int
	NewFunc func() hash.Hash
}

var (
	MD5  = &HashType{Name: "md5", Width: 32, NewFunc: md5.New}
	SHA1 = &HashType{Name: "sha1", Width: 40, NewFunc: sha1.New}
)

// HashData returns the lowercase hex digest of data.
func HashData(hashType *HashType, data []byte) string {
	h := hashType.NewFunc()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
