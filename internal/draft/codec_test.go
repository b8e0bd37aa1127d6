package draft

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, EncryptionKeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func recordWithCredential() models.FilingRecord {
	record := models.NewFilingRecord(models.FormType4)
	record.ReportingOwners = append(record.ReportingOwners, models.ReportingOwner{
		CIK:  "0001234567",
		CCC:  "topsecret1",
		Name: "Doe Jane",
	})
	return record
}

func TestPayloadCodec_PlainWithoutKey(t *testing.T) {
	codec, err := newPayloadCodec(nil)
	require.NoError(t, err)

	payload, err := codec.encode(recordWithCredential())
	require.NoError(t, err)
	assert.True(t, bytes.Contains(payload, []byte("topsecret1")))

	loaded, err := codec.decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "topsecret1", loaded.ReportingOwners[0].CCC)
}

func TestPayloadCodec_SealedRoundTrip(t *testing.T) {
	codec, err := newPayloadCodec(testKey(t))
	require.NoError(t, err)

	payload, err := codec.encode(recordWithCredential())
	require.NoError(t, err)

	// The sealed envelope is still JSON, but the credential never appears
	// in cleartext at rest.
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(payload, &envelope))
	assert.False(t, bytes.Contains(payload, []byte("topsecret1")))

	loaded, err := codec.decode(payload)
	require.NoError(t, err)
	require.Len(t, loaded.ReportingOwners, 1)
	assert.Equal(t, "topsecret1", loaded.ReportingOwners[0].CCC)
	assert.Equal(t, models.FormType4, loaded.FormType)
}

func TestPayloadCodec_WrongKeyFails(t *testing.T) {
	sealer, err := newPayloadCodec(testKey(t))
	require.NoError(t, err)
	opener, err := newPayloadCodec(testKey(t))
	require.NoError(t, err)

	payload, err := sealer.encode(recordWithCredential())
	require.NoError(t, err)

	_, err = opener.decode(payload)
	assert.Error(t, err)
}

func TestPayloadCodec_TamperedPayloadFails(t *testing.T) {
	codec, err := newPayloadCodec(testKey(t))
	require.NoError(t, err)

	payload, err := codec.encode(recordWithCredential())
	require.NoError(t, err)

	var sealed sealedDraft
	require.NoError(t, json.Unmarshal(payload, &sealed))
	sealed.Data[0] ^= 0xff
	tampered, err := json.Marshal(sealed)
	require.NoError(t, err)

	_, err = codec.decode(tampered)
	assert.Error(t, err)
}

func TestPayloadCodec_RejectsBadKeyLength(t *testing.T) {
	_, err := newPayloadCodec([]byte("short"))
	assert.Error(t, err)
}

func TestPayloadCodec_RejectsUnknownAlgorithm(t *testing.T) {
	codec, err := newPayloadCodec(testKey(t))
	require.NoError(t, err)

	payload, err := json.Marshal(sealedDraft{Alg: "rot13", Data: []byte("x")})
	require.NoError(t, err)

	_, err = codec.decode(payload)
	assert.ErrorContains(t, err, "unsupported algorithm")
}
