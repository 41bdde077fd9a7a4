// Package claimskey generates the EdDSA key pair for chat access tokens.
//
// The private half belongs to the chat backend that mints tokens and never
// ships with chatguard; verification only needs the public half, read from
// the token package's environment.
package claimskey

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/louisbranch/chatguard/token"
)

// EnvPrivateKey names the variable the chat backend reads to sign tokens.
const EnvPrivateKey = "CHATGUARD_TOKEN_PRIVATE_KEY"

// Run generates an access token key pair and writes shell export lines for
// both halves. reader overrides the entropy source in tests; nil means
// crypto/rand.
func Run(out io.Writer, reader io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}

	publicKey, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return fmt.Errorf("generate access token key: %w", err)
	}

	exports := []struct {
		name string
		key  []byte
	}{
		{EnvPrivateKey, privateKey},
		{token.EnvPublicKey, publicKey},
	}
	for _, e := range exports {
		if _, err := fmt.Fprintf(out, "export %s=%s\n", e.name, base64.RawStdEncoding.EncodeToString(e.key)); err != nil {
			return err
		}
	}
	return nil
}
