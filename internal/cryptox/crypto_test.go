package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	assert.Len(t, key1, KeySize)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, SaltFor("alice"))
	key2 := DeriveKey(password, SaltFor("bob"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("pw"), SaltFor("acct"))
	plain := []byte(`{"title":"hello"}`)

	ct, nonce, err := Seal(plain, key)
	require.NoError(t, err)
	require.Len(t, nonce, NonceSize)
	assert.NotEqual(t, plain, ct)

	got, err := Open(ct, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	ct, nonce, err := Seal([]byte("x"), DeriveKey([]byte("a"), SaltFor("acct")))
	require.NoError(t, err)

	_, err = Open(ct, nonce, DeriveKey([]byte("b"), SaltFor("acct")))
	require.Error(t, err)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, _, err := Seal([]byte("x"), []byte("short"))
	require.Error(t, err)
}

func TestNewSealer_WipesPassphrase(t *testing.T) {
	pw := []byte("passphrase")
	s, err := NewSealer(pw, "acct")
	require.NoError(t, err)
	assert.Equal(t, make([]byte, len(pw)), pw)

	ct, nonce, err := s.Seal([]byte("data"))
	require.NoError(t, err)
	out, err := s.Open(ct, nonce)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), out)
}

func TestNewSealer_EmptyPassphrase(t *testing.T) {
	_, err := NewSealer(nil, "acct")
	require.ErrorIs(t, err, ErrEmptyPassphrase)
}

func TestWipe_NilSafe(t *testing.T) {
	Wipe(nil)
}
