package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() failed: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("GenerateKey() returned %d bytes, want 32", len(key))
	}

	key2, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() second call failed: %v", err)
	}
	if bytes.Equal(key, key2) {
		t.Error("GenerateKey() returned identical keys, should be random")
	}
}

func TestEncodeDecodeKeyBase64(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() failed: %v", err)
	}

	decoded, err := DecodeKeyBase64(EncodeKeyBase64(key))
	if err != nil {
		t.Fatalf("DecodeKeyBase64() failed: %v", err)
	}
	if !bytes.Equal(key, decoded) {
		t.Error("DecodeKeyBase64() returned different key than original")
	}
}

func TestDecodeKeyBase64_Invalid(t *testing.T) {
	if _, err := DecodeKeyBase64("not-valid-base64!!!"); err == nil {
		t.Error("DecodeKeyBase64() should fail for invalid base64")
	}
	if _, err := DecodeKeyBase64(EncodeKeyBase64(make([]byte, 16))); err == nil {
		t.Error("DecodeKeyBase64() should fail for non-32-byte key")
	}
}

func TestNewAESEncryptor_KeySize(t *testing.T) {
	for _, size := range []int{0, 16, 24, 31, 33} {
		if _, err := NewAESEncryptor(make([]byte, size)); err == nil {
			t.Errorf("NewAESEncryptor() should fail with %d byte key", size)
		}
	}

	key, _ := GenerateKey()
	enc, err := NewAESEncryptor(key)
	if err != nil {
		t.Fatalf("NewAESEncryptor() failed: %v", err)
	}
	if enc == nil {
		t.Error("NewAESEncryptor() returned nil encryptor")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	key, _ := GenerateKey()
	enc, _ := NewAESEncryptor(key)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"client secret", "usps_client_secret_4f9c2b7e"},
		{"empty string", ""},
		{"unicode", "Calle Norzagaray ✉"},
		{"long token", "eyJhbGciOiJSUzI1NiJ9." + string(bytes.Repeat([]byte("a"), 512))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := enc.Encrypt([]byte(tt.plaintext))
			if err != nil {
				t.Fatalf("Encrypt() failed: %v", err)
			}

			decrypted, err := enc.Decrypt(ciphertext)
			if err != nil {
				t.Fatalf("Decrypt() failed: %v", err)
			}
			if !bytes.Equal([]byte(tt.plaintext), decrypted) {
				t.Errorf("Decrypt() = %q, want %q", decrypted, tt.plaintext)
			}
		})
	}
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	key, _ := GenerateKey()
	enc, _ := NewAESEncryptor(key)

	c1, err := enc.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	c2, err := enc.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("Encrypt() second call failed: %v", err)
	}
	if bytes.Equal(c1, c2) {
		t.Error("Encrypt() returned identical ciphertexts, should use random nonce")
	}
}

func TestDecrypt_Failures(t *testing.T) {
	key1, _ := GenerateKey()
	key2, _ := GenerateKey()
	enc1, _ := NewAESEncryptor(key1)
	enc2, _ := NewAESEncryptor(key2)

	ciphertext, _ := enc1.Encrypt([]byte("secret data"))

	if _, err := enc2.Decrypt(ciphertext); err == nil {
		t.Error("Decrypt() should fail with wrong key")
	}
	if _, err := enc1.Decrypt([]byte("not-valid-base64!!!")); err == nil {
		t.Error("Decrypt() should fail with invalid base64")
	}
	if _, err := enc1.Decrypt([]byte(EncodeKeyBase64([]byte("tiny")))); err == nil {
		t.Error("Decrypt() should fail with ciphertext shorter than nonce size")
	}

	// Flip a character to break the GCM authentication tag.
	tampered := bytes.Clone(ciphertext)
	if tampered[10] == 'A' {
		tampered[10] = 'B'
	} else {
		tampered[10] = 'A'
	}
	if _, err := enc1.Decrypt(tampered); err == nil {
		t.Error("Decrypt() should fail with tampered ciphertext")
	}
}
