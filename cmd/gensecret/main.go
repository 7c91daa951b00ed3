package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

func main() {
	const secretFile = "secret.key"
	if _, err := os.Stat(secretFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Refusing to overwrite.\n", secretFile)
		os.Exit(1)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating random key: %v\n", err)
		os.Exit(1)
	}
	hexKey := hex.EncodeToString(key)
	if err := os.WriteFile(secretFile, []byte(hexKey+"\n"), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", secretFile, err)
		os.Exit(1)
	}
	fmt.Printf("Master secret written to %s\n", secretFile)
}
