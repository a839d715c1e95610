// Package security derives the encrypted security credential that
// privileged operations carry in place of the raw initiator password.
package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"

	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// Encryptor holds the RSA public key extracted from an environment
// certificate. One Encryptor is parsed per client and reused across
// dispatches; it is safe for concurrent use.
type Encryptor struct {
	key *rsa.PublicKey
}

// NewEncryptor parses a PEM-encoded X509 certificate and extracts its RSA
// public key.
func NewEncryptor(certPEM string) (*Encryptor, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, &mpesa.EncryptionError{Message: "parsing certificate", Err: mpesa.ErrMissingPEMBlock}
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, &mpesa.EncryptionError{Message: "parsing certificate", Err: err}
	}

	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, &mpesa.EncryptionError{Message: "extracting public key", Err: mpesa.ErrCertificateNoRSAKey}
	}

	return &Encryptor{key: key}, nil
}

// Encrypt turns an initiator password into a security credential: the
// password encrypted with RSA PKCS#1 v1.5 and base64 encoded. PKCS#1 v1.5
// padding is randomized, so two calls with the same password produce
// different credentials; both decrypt to the same value on the provider
// side.
func (e *Encryptor) Encrypt(password string) (string, error) {
	if password == "" {
		return "", &mpesa.EncryptionError{Message: "encrypting credential", Err: mpesa.ErrEmptyInitiatorPass}
	}

	// PKCS#1 v1.5 padding needs 11 bytes of the modulus.
	if len(password) > e.key.Size()-11 {
		return "", &mpesa.EncryptionError{Message: "encrypting credential", Err: mpesa.ErrPlaintextTooLong}
	}

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, e.key, []byte(password))
	if err != nil {
		return "", &mpesa.EncryptionError{Message: "encrypting credential", Err: err}
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
