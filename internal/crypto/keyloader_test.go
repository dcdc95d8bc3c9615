package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

// testKeyPEM generates a small RSA key and returns its PKCS#8 PEM encoding.
func testKeyPEM(t *testing.T) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func TestLoadRSAPrivateKeyInlinePEM(t *testing.T) {
	pemBytes := testKeyPEM(t)
	key, err := LoadRSAPrivateKey(KeySource{InlinePEM: string(pemBytes)})
	if err != nil {
		t.Fatalf("LoadRSAPrivateKey: %v", err)
	}
	if key == nil {
		t.Fatal("returned nil key")
	}
}

func TestLoadRSAPrivateKeyInlineBase64(t *testing.T) {
	pemBytes := testKeyPEM(t)
	encoded := base64.StdEncoding.EncodeToString(pemBytes)
	if _, err := LoadRSAPrivateKey(KeySource{InlineBase64: encoded}); err != nil {
		t.Fatalf("LoadRSAPrivateKey: %v", err)
	}
}

func TestLoadRSAPrivateKeyFromFile(t *testing.T) {
	pemBytes := testKeyPEM(t)
	path := filepath.Join(t.TempDir(), "key.pem")
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	if _, err := LoadRSAPrivateKey(KeySource{Path: path}); err != nil {
		t.Fatalf("LoadRSAPrivateKey: %v", err)
	}
}

func TestLoadRSAPrivateKeyEncryptedRoundTrip(t *testing.T) {
	pemBytes := testKeyPEM(t)
	envelope, err := EncryptPEM(pemBytes, "hunter2")
	if err != nil {
		t.Fatalf("EncryptPEM: %v", err)
	}
	path := filepath.Join(t.TempDir(), "key.enc.json")
	if err := os.WriteFile(path, envelope, 0o600); err != nil {
		t.Fatalf("write envelope: %v", err)
	}

	if _, err := LoadRSAPrivateKey(KeySource{EncryptedPath: path, Password: "hunter2"}); err != nil {
		t.Fatalf("LoadRSAPrivateKey: %v", err)
	}

	if _, err := LoadRSAPrivateKey(KeySource{EncryptedPath: path, Password: "wrong"}); err == nil {
		t.Fatal("expected decryption failure with wrong password")
	}
}

func TestLoadRSAPrivateKeyRejectsAmbiguousSources(t *testing.T) {
	pemBytes := testKeyPEM(t)
	_, err := LoadRSAPrivateKey(KeySource{
		InlinePEM: string(pemBytes),
		Path:      "also-a-path.pem",
	})
	if err == nil {
		t.Fatal("expected error for multiple key sources")
	}
}

func TestLoadRSAPrivateKeyRejectsMissingSource(t *testing.T) {
	if _, err := LoadRSAPrivateKey(KeySource{}); err == nil {
		t.Fatal("expected error for no key source")
	}
}

func TestLoadRSAPrivateKeyHandlesEscapedNewlines(t *testing.T) {
	pemBytes := testKeyPEM(t)
	// Simulate an env var where real newlines arrive as literal "\n".
	escaped := ""
	for i, b := range string(pemBytes) {
		if b == '\n' && i != len(pemBytes)-1 {
			escaped += `\n`
		} else if b != '\n' {
			escaped += string(b)
		}
	}
	if _, err := LoadRSAPrivateKey(KeySource{InlinePEM: escaped}); err != nil {
		t.Fatalf("LoadRSAPrivateKey with escaped newlines: %v", err)
	}
}
