// Package crypto resolves the RSA private key used to sign catalog API
// requests. Key material may be supplied inline as PEM text, inline as
// base64, as a plaintext file path, or as a password-encrypted envelope file.
package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"github.com/barhop/barhop/internal/domain"
)

// KeySource carries the possible locations of the signing key. Exactly one of
// InlinePEM, InlineBase64, Path, or EncryptedPath must be set; resolution
// happens once at startup and a failure is fatal.
type KeySource struct {
	// InlinePEM is literal PEM text, possibly with "\n" escape sequences
	// as they arrive through environment variables.
	InlinePEM string

	// InlineBase64 is the base64 encoding of the PEM bytes.
	InlineBase64 string

	// Path points at a plaintext PEM file.
	Path string

	// EncryptedPath points at a JSON envelope produced by EncryptPEM.
	EncryptedPath string

	// Password decrypts the envelope at EncryptedPath.
	Password string
}

// LoadRSAPrivateKey resolves and parses the private key described by src.
func LoadRSAPrivateKey(src KeySource) (*rsa.PrivateKey, error) {
	sources := 0
	for _, s := range []string{src.InlinePEM, src.InlineBase64, src.Path, src.EncryptedPath} {
		if strings.TrimSpace(s) != "" {
			sources++
		}
	}
	if sources == 0 {
		return nil, fmt.Errorf("crypto: no private key source configured: %w", domain.ErrInvalidKey)
	}
	if sources > 1 {
		return nil, fmt.Errorf("crypto: multiple private key sources configured, expected exactly one: %w", domain.ErrInvalidKey)
	}

	var pemBytes []byte
	switch {
	case strings.TrimSpace(src.InlinePEM) != "":
		// Env vars often carry the PEM with literal "\n" sequences.
		pemBytes = []byte(strings.ReplaceAll(strings.TrimSpace(src.InlinePEM), `\n`, "\n"))

	case strings.TrimSpace(src.InlineBase64) != "":
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(src.InlineBase64))
		if err != nil {
			return nil, fmt.Errorf("crypto: decode base64 key: %w", err)
		}
		pemBytes = decoded

	case strings.TrimSpace(src.Path) != "":
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("crypto: read key file %s: %w", src.Path, err)
		}
		pemBytes = data

	default:
		if src.Password == "" {
			return nil, fmt.Errorf("crypto: key_password is required with an encrypted key file: %w", domain.ErrInvalidKey)
		}
		envelope, err := os.ReadFile(src.EncryptedPath)
		if err != nil {
			return nil, fmt.Errorf("crypto: read encrypted key file %s: %w", src.EncryptedPath, err)
		}
		pemBytes, err = DecryptPEM(envelope, src.Password)
		if err != nil {
			return nil, fmt.Errorf("crypto: decrypt key file %s: %w", src.EncryptedPath, err)
		}
	}

	return ParseRSAPrivateKeyPEM(pemBytes)
}

// ParseRSAPrivateKeyPEM parses PEM-encoded RSA key bytes, accepting both
// PKCS#8 and PKCS#1 encodings.
func ParseRSAPrivateKeyPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("crypto: no PEM block found: %w", domain.ErrInvalidKey)
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		// Try PKCS1 as fallback.
		pkcs1Key, pkcs1Err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if pkcs1Err != nil {
			return nil, fmt.Errorf("crypto: parse private key: %w (pkcs1: %v)", err, pkcs1Err)
		}
		return pkcs1Key, nil
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("crypto: expected RSA private key, got %T: %w", key, domain.ErrInvalidKey)
	}
	return rsaKey, nil
}
