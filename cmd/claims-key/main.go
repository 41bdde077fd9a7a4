// Package main provides a one-shot utility for access token key generation.
//
// It emits the asymmetric keypair used to sign and verify chat access tokens.
package main

import (
	"os"

	entrypoint "github.com/louisbranch/chatguard/internal/platform/cmd"
	"github.com/louisbranch/chatguard/internal/tools/claimskey"
)

func main() {
	if err := claimskey.Run(os.Stdout, nil); err != nil {
		entrypoint.Exitf("generate access token key: %v", err)
	}
}
