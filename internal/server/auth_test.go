package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/almanac/internal/config"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltVaries(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not argon2id": "$bcrypt$whatever$x$y$z",
		"too short":    "$argon2id$v=19$m=65536",
		"bad base64":   "$argon2id$v=19$m=65536,t=1,p=4$!!!$!!!",
	}
	for name, hash := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := VerifyPassword("anything", hash)
			assert.Error(t, err)
		})
	}
}

func TestAPI_AuthRequired(t *testing.T) {
	hash, err := HashPassword("sekrit")
	require.NoError(t, err)
	ts, _ := newTestServer(t, WithAuth(&config.AuthConfig{Username: "kay", PasswordHash: hash}))

	// No credentials.
	resp, err := http.Get(ts.URL + "/api/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")

	// Wrong password.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)
	req.SetBasicAuth("kay", "guess")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Correct credentials.
	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)
	req.SetBasicAuth("kay", "sekrit")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth_OpenDespiteAuth(t *testing.T) {
	hash, err := HashPassword("sekrit")
	require.NoError(t, err)
	ts, _ := newTestServer(t, WithAuth(&config.AuthConfig{Username: "kay", PasswordHash: hash}))

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_NoAuthConfiguredIsOpen(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
