package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// attestationTTL is how long a signed attestation remains valid. The
// platform treats attestations as long-lived bank-level assertions.
const attestationTTL = 365 * 24 * time.Hour

// ParseSigningKey parses a PKCS#8 or PKCS#1 PEM-encoded RSA private key.
func ParseSigningKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("no PEM block found in signing key")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("signing key is %T, want *rsa.PrivateKey", key)
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}
	return rsaKey, nil
}

// SignAttestation produces the RS512 JWT the platform accepts as a
// bank-signed identity attestation for a customer. The verification key
// GUID is carried in the kid header so the platform can locate the
// registered public key.
func SignAttestation(key *rsa.PrivateKey, apiURL, verificationKeyGUID, bankGUID, customerGUID string) (string, error) {
	if key == nil {
		return "", errors.New("signing key is required")
	}

	issuedAt := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss": apiURL + "/banks/" + bankGUID,
		"aud": apiURL,
		"sub": apiURL + "/customers/" + customerGUID,
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(attestationTTL).Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS512, claims)
	token.Header["kid"] = verificationKeyGUID

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign attestation: %w", err)
	}
	return signed, nil
}
