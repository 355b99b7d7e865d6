package crypto

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
)

// DeriveKey derives a 32-byte key from the master secret using HMAC-SHA512
// with a usage string, then walks one HMAC step per path element.
func DeriveKey(master []byte, usage string, path ...string) ([]byte, error) {
	if len(master) == 0 {
		return nil, fmt.Errorf("master secret is empty")
	}
	h := hmac.New(sha512.New, []byte(usage+" Master Seed"))
	h.Write(master)
	sum := h.Sum(nil)
	key, chain := sum[:32], sum[32:]

	for _, index := range path {
		h := hmac.New(sha512.New, chain)
		h.Write(append([]byte{0x00}, []byte(index)...))
		sum := h.Sum(nil)
		key, chain = sum[:32], sum[32:]
	}
	return key, nil
}
