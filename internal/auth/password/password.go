// Package password hashes donor account passwords with Argon2id. Hashes are
// stored in the standard $argon2id$ encoded form, so Verify re-reads the cost
// parameters from the hash itself and older records survive cost changes.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16
)

// Hash returns the encoded Argon2id hash of password with a fresh random salt.
func Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	saltEnc := base64.RawStdEncoding.EncodeToString(salt)
	hashEnc := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s", argonMemory, argonTime, argonThreads, saltEnc, hashEnc), nil
}

// Verify reports whether password matches the encoded Argon2id hash. Malformed
// hashes verify as false rather than erroring.
func Verify(password, encoded string) bool {
	salt, hash, iterations, memory, threads, ok := decodeHash(encoded)
	if !ok {
		return false
	}
	check := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, check) == 1
}

func decodeHash(encoded string) (salt, hash []byte, iterations, memory uint32, threads uint8, valid bool) {
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[1] != "argon2id" || fields[2] != "v=19" {
		return
	}

	params := strings.Split(fields[3], ",")
	if len(params) != 3 {
		return
	}
	m, err := parseParam(params[0], "m=", 32)
	if err != nil {
		return
	}
	t, err := parseParam(params[1], "t=", 32)
	if err != nil {
		return
	}
	p, err := parseParam(params[2], "p=", 8)
	if err != nil {
		return
	}

	salt, err = base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return
	}
	hash, err = base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return
	}

	return salt, hash, uint32(t), uint32(m), uint8(p), true
}

func parseParam(field, prefix string, bits int) (uint64, error) {
	v, ok := strings.CutPrefix(field, prefix)
	if !ok {
		return 0, fmt.Errorf("malformed argon2 param %q", field)
	}
	return strconv.ParseUint(v, 10, bits)
}
