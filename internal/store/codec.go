package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// ErrWrongPassphrase is returned when a blob fails to decrypt due to a bad
// passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorruptedBlob is returned when a stored blob exists but cannot be
// decoded.
var ErrCorruptedBlob = errors.New("stored data is corrupted or unreadable")

// Codec transforms a serialized blob on its way to and from the database.
// Encryption sits behind this seam so the rest of the app never sees it.
type Codec interface {
	Encode(plaintext []byte) ([]byte, error)
	Decode(stored []byte) ([]byte, error)
}

// PlainCodec stores blobs as-is.
type PlainCodec struct{}

func (PlainCodec) Encode(plaintext []byte) ([]byte, error) { return plaintext, nil }
func (PlainCodec) Decode(stored []byte) ([]byte, error)    { return stored, nil }

// AgeCodec encrypts blobs with age scrypt passphrase encryption, armored
// so the stored column stays text.
type AgeCodec struct {
	Passphrase string
}

func (c AgeCodec) Encode(plaintext []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(c.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)
	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return buf.Bytes(), nil
}

func (c AgeCodec) Decode(stored []byte) ([]byte, error) {
	identity, err := age.NewScryptIdentity(c.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	armorReader := armor.NewReader(bytes.NewReader(stored))
	r, err := age.Decrypt(armorReader, identity)
	if err != nil {
		// age does not export a typed wrong-passphrase error, so match the
		// known message wording and fall back to the corruption error.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptedBlob, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorruptedBlob, err)
	}
	return plaintext, nil
}
