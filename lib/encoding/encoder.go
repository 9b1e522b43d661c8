// Package encoding packs component props into URL-safe strings.
//
// Props are serialised with msgpack (map keys sorted, so equal values pack
// to equal bytes) and then either signed or sealed:
//
//	signed: base64url(packed) "." base64url(hmac-sha256(packed)[:16])
//	sealed: base64url(nonce || aes-256-gcm(packed))
//
// Signed strings are readable by anyone but cannot be altered. Sealed
// strings are opaque and use a fresh nonce each time.
package encoding

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by NewEncoder and Decode. Callers map the decode
// errors onto their own vocabulary.
var (
	ErrEmptyKey         = errors.New("encoding: empty key")
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// macSize is the length of the truncated HMAC in a signed string.
const macSize = 16

var b64 = base64.RawURLEncoding

// Encoder turns props into URL-safe strings and back. It is safe for
// concurrent use.
type Encoder struct {
	macKey []byte
	aead   cipher.AEAD
}

// NewEncoder derives independent signing and sealing keys from secret.
// Any non-empty secret is accepted.
func NewEncoder(secret []byte) (*Encoder, error) {
	if len(secret) == 0 {
		return nil, ErrEmptyKey
	}

	sealKey := derive(secret, "seal")
	block, err := aes.NewCipher(sealKey)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{macKey: derive(secret, "sign"), aead: aead}, nil
}

func derive(secret []byte, purpose string) []byte {
	m := hmac.New(sha256.New, secret)
	m.Write([]byte("hxtitle/" + purpose))
	return m.Sum(nil)
}

// Encode packs v and signs it, or seals it when sensitive is set. v is
// packed by msgpack as-is, so `msgpack` struct tags control field names.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return "", err
	}

	if sensitive {
		return e.seal(buf.Bytes())
	}
	return e.sign(buf.Bytes()), nil
}

// Decode reverses Encode into v, which must be a pointer. sensitive must
// match the value used to encode.
func (e *Encoder) Decode(s string, sensitive bool, v any) error {
	open := e.verify
	if sensitive {
		open = e.open
	}

	packed, err := open(s)
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

func (e *Encoder) sign(packed []byte) string {
	return b64.EncodeToString(packed) + "." + b64.EncodeToString(e.mac(packed))
}

func (e *Encoder) verify(s string) ([]byte, error) {
	body, tag, found := strings.Cut(s, ".")
	if !found {
		return nil, fmt.Errorf("%w: no signature", ErrInvalidFormat)
	}

	packed, err := b64.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: body: %v", ErrInvalidFormat, err)
	}
	sum, err := b64.DecodeString(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", ErrInvalidFormat, err)
	}
	if !hmac.Equal(sum, e.mac(packed)) {
		return nil, ErrSignatureInvalid
	}
	return packed, nil
}

func (e *Encoder) mac(packed []byte) []byte {
	m := hmac.New(sha256.New, e.macKey)
	m.Write(packed)
	return m.Sum(nil)[:macSize]
}

func (e *Encoder) seal(packed []byte) (string, error) {
	out := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(packed)+e.aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return "", err
	}
	return b64.EncodeToString(e.aead.Seal(out, out, packed, nil)), nil
}

func (e *Encoder) open(s string) ([]byte, error) {
	raw, err := b64.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	n := e.aead.NonceSize()
	if len(raw) < n+e.aead.Overhead() {
		return nil, fmt.Errorf("%w: sealed value too short", ErrInvalidFormat)
	}
	packed, err := e.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return packed, nil
}
