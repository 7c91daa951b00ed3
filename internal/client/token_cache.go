package client

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/crypto"
)

// The token cache keeps the login token between runs, sealed with a
// machine-local key so the JWT is not stored in the clear.

const (
	cacheKeyFile   = "cache.key"
	tokenCacheFile = "token.enc"
)

// cacheKey loads the local cache key, generating one on first use.
func cacheKey(dir string) ([]byte, error) {
	path := filepath.Join(dir, cacheKeyFile)
	if b, err := os.ReadFile(path); err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(b)))
		if err == nil && len(key) == 32 {
			return key, nil
		}
	}
	key := crypto.MustRandom(32)
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)+"\n"), 0600); err != nil {
		return nil, err
	}
	return key, nil
}

// SaveToken seals the token and writes it to the config dir.
func SaveToken(token string) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	key, err := cacheKey(dir)
	if err != nil {
		return err
	}
	blob, err := crypto.EncryptAESGCM(key, []byte(token))
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, tokenCacheFile), blob, 0600)
}

// LoadToken reads and unseals the cached token. Returns an empty string when
// no usable cache exists.
func LoadToken() string {
	dir, err := ConfigDir()
	if err != nil {
		return ""
	}
	key, err := cacheKey(dir)
	if err != nil {
		return ""
	}
	blob, err := os.ReadFile(filepath.Join(dir, tokenCacheFile))
	if err != nil {
		return ""
	}
	plain, err := crypto.DecryptAESGCM(key, blob)
	if err != nil {
		return ""
	}
	return string(plain)
}

// ClearToken removes the cached token.
func ClearToken() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, tokenCacheFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
