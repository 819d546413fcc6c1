package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"io"

	"golang.org/x/crypto/ssh"
)

// KeyPair is an SSH key pair ready for upload.
type KeyPair struct {
	// PrivateKey is the OpenSSH PEM encoding of the private key.
	PrivateKey []byte
	// PublicKey is in authorized_keys format with a trailing newline.
	PublicKey []byte
	// Fingerprint is the SHA256 fingerprint of the public key.
	Fingerprint string
}

// GenerateEd25519 creates a new key pair with the given comment.
func GenerateEd25519(comment string) (*KeyPair, error) {
	return generate(rand.Reader, comment)
}

func generate(random io.Reader, comment string) (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(random)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(priv, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey:  pem.EncodeToMemory(block),
		PublicKey:   ssh.MarshalAuthorizedKey(sshPub),
		Fingerprint: ssh.FingerprintSHA256(sshPub),
	}, nil
}
