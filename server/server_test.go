package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coral/loader"
	"coral/rule"
)

func mathSet(t *testing.T) *rule.Set {
	t.Helper()
	set := rule.NewSet()
	err := loader.LoadText("zero = 0\none = s 0\n+ A 0 = A\n+ A (s B) = + (s A) B\n", "<test>", set)
	require.NoError(t, err)
	return set
}

func TestHandleReduceRequiresBearerToken(t *testing.T) {
	srv := New(mathSet(t), []byte("secret"))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/reduce", "application/json", bytes.NewBufferString(`{"query":"zero"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleReduceWithValidToken(t *testing.T) {
	secret := []byte("secret")
	srv := New(mathSet(t), secret)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	tok, err := IssueToken(secret, "test", time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/reduce", bytes.NewBufferString(`{"query":"+ one zero"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleReduceRejectsEmptyQuery(t *testing.T) {
	secret := []byte("secret")
	srv := New(mathSet(t), secret)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	tok, err := IssueToken(secret, "test", time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/reduce", bytes.NewBufferString(`{"query":""}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleReduceRejectsTokenSignedWithWrongSecret(t *testing.T) {
	srv := New(mathSet(t), []byte("secret"))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	tok, err := IssueToken([]byte("wrong-secret"), "test", time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/reduce", bytes.NewBufferString(`{"query":"zero"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
