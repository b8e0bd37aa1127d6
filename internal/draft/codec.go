package draft

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

// EncryptionKeySize is the required key length for WithEncryptionKey.
const EncryptionKeySize = chacha20poly1305.KeySize

const sealedAlg = "xchacha20poly1305"

// sealedDraft is the at-rest envelope for encrypted payloads. It is itself
// valid JSON so the postgres JSONB column accepts sealed and plain payloads
// alike.
type sealedDraft struct {
	Alg   string `json:"alg"`
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

// payloadCodec serializes draft records, optionally sealing them with
// XChaCha20-Poly1305. Drafts carry filer credentials (owner CCCs) that must
// round-trip intact for submission, so sealing uses authenticated encryption,
// not a one-way hash.
type payloadCodec struct {
	aead cipher.AEAD
}

func newPayloadCodec(key []byte) (*payloadCodec, error) {
	if len(key) == 0 {
		return &payloadCodec{}, nil
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("draft encryption key: %w", err)
	}
	return &payloadCodec{aead: aead}, nil
}

func (c *payloadCodec) encode(record models.FilingRecord) ([]byte, error) {
	plain, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal draft payload: %w", err)
	}
	if c.aead == nil {
		return plain, nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate draft nonce: %w", err)
	}
	return json.Marshal(sealedDraft{
		Alg:   sealedAlg,
		Nonce: nonce,
		Data:  c.aead.Seal(nil, nonce, plain, nil),
	})
}

func (c *payloadCodec) decode(payload []byte) (models.FilingRecord, error) {
	if c.aead != nil {
		var sealed sealedDraft
		if err := json.Unmarshal(payload, &sealed); err != nil {
			return models.FilingRecord{}, fmt.Errorf("unmarshal sealed draft: %w", err)
		}
		if sealed.Alg != sealedAlg {
			return models.FilingRecord{}, fmt.Errorf("sealed draft: unsupported algorithm %q", sealed.Alg)
		}
		if len(sealed.Nonce) != c.aead.NonceSize() {
			return models.FilingRecord{}, errors.New("sealed draft: malformed nonce")
		}
		plain, err := c.aead.Open(nil, sealed.Nonce, sealed.Data, nil)
		if err != nil {
			return models.FilingRecord{}, fmt.Errorf("open sealed draft: %w", err)
		}
		payload = plain
	}

	var record models.FilingRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return models.FilingRecord{}, fmt.Errorf("unmarshal draft payload: %w", err)
	}
	return record, nil
}

type storeOptions struct {
	encryptionKey []byte
}

// Option configures the persistent draft stores.
type Option func(*storeOptions)

// WithEncryptionKey seals draft payloads at rest with XChaCha20-Poly1305.
// The key must be EncryptionKeySize bytes.
func WithEncryptionKey(key []byte) Option {
	return func(o *storeOptions) { o.encryptionKey = key }
}

func codecFromOptions(opts []Option) (*payloadCodec, error) {
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return newPayloadCodec(o.encryptionKey)
}
