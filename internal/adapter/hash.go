package adapter

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("strokefix-content-fingerprint-k1")

// Fingerprint returns a short, stable hash of content.
func Fingerprint(content []byte) (string, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}

	if _, err := hash.Write(content); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}
