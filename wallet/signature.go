package wallet

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"go.dedis.ch/kyber/v4/group/edwards25519"
	"go.dedis.ch/kyber/v4/sign/eddsa"
	"golang.org/x/crypto/blake2b"
)

const (
	schemeEd25519 byte = 0x00

	signatureSize = 64
	publicKeySize = 32
)

var transactionIntent = []byte{0, 0, 0}

var ErrBadSignature = errors.New("bad signature")

var curve = edwards25519.NewBlakeSHA256Ed25519()

// AddressOf derives the account address of an Ed25519 public key.
func AddressOf(pub []byte) string {
	sum := blake2b.Sum256(append([]byte{schemeEd25519}, pub...))
	return "0x" + hex.EncodeToString(sum[:])
}

func signingDigest(txBytes []byte) []byte {
	var msg bytes.Buffer
	msg.Write(transactionIntent)
	msg.Write(txBytes)
	sum := blake2b.Sum256(msg.Bytes())
	return sum[:]
}

// Sign produces the serialized signature of txBytes.
func Sign(key *eddsa.EdDSA, txBytes []byte) (string, error) {
	sig, err := key.Sign(signingDigest(txBytes))
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	pub, err := key.Public.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encode public key: %w", err)
	}
	out := make([]byte, 0, 1+signatureSize+publicKeySize)
	out = append(out, schemeEd25519)
	out = append(out, sig...)
	out = append(out, pub...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Verify checks a serialized signature over txBytes and returns the address
// of the signer.
func Verify(txBytes []byte, signature string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	if len(raw) != 1+signatureSize+publicKeySize || raw[0] != schemeEd25519 {
		return "", fmt.Errorf("%w: unexpected layout", ErrBadSignature)
	}
	sig := raw[1 : 1+signatureSize]
	pubBytes := raw[1+signatureSize:]

	pub := curve.Point()
	if err := pub.UnmarshalBinary(pubBytes); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	if err := eddsa.Verify(pub, signingDigest(txBytes), sig); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	return AddressOf(pubBytes), nil
}
