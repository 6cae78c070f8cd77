// Package crypto вычисляет контрольные суммы содержимого снапшотов.
package crypto

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrChecksumMismatch содержимое не соответствует контрольной сумме
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Checksum возвращает hex-encoded BLAKE2b-256 от data.
// Используется на клиенте и сервере для проверки целостности снапшота.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum проверяет, что checksum получен от data.
func VerifyChecksum(data []byte, checksum string) error {
	if checksum == "" {
		return fmt.Errorf("checksum cannot be empty")
	}

	computed := Checksum(data)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(checksum)) != 1 {
		return ErrChecksumMismatch
	}

	return nil
}
