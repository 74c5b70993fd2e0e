package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transcribe", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req TranscribeReq
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Word {
		case "zorp":
			_ = json.NewEncoder(w).Encode(TranscribeResp{Phonemes: []string{"Z", "AO1", "R", "P"}})
		case "mute":
			_ = json.NewEncoder(w).Encode(TranscribeResp{})
		default:
			http.Error(w, "unknown word", http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	h := NewHTTP(srv.URL+"/", time.Second)

	got, err := h.Transcribe(context.Background(), "zorp")
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "AO1", "R", "P"}, got)

	_, err = h.Transcribe(context.Background(), "mute")
	assert.ErrorContains(t, err, "no phonemes")

	_, err = h.Transcribe(context.Background(), "other")
	assert.ErrorContains(t, err, "400")
}

func TestHTTPTranscribeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, 20*time.Millisecond).Transcribe(context.Background(), "slow")
	assert.Error(t, err)
}

// fakeT2P writes a shell script that prints the word followed by fixed phonemes.
func fakeT2P(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake")
	}
	path := filepath.Join(t.TempDir(), "t2p")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestT2PTranscribe(t *testing.T) {
	// $1=-transcribe $2=tree $3=input file
	bin := fakeT2P(t, `[ "$1" = "-transcribe" ] || exit 2; printf '%s F IH1 SH\n' "$(cat "$3")"`)
	got, err := NewT2P(bin, "tree", time.Second).Transcribe(context.Background(), "fish")
	require.NoError(t, err)
	assert.Equal(t, []string{"F", "IH1", "SH"}, got)
}

func TestT2PFailures(t *testing.T) {
	empty := fakeT2P(t, `cat "$3"`)
	_, err := NewT2P(empty, "tree", time.Second).Transcribe(context.Background(), "fish")
	assert.ErrorContains(t, err, "empty output")

	failing := fakeT2P(t, `echo "no tree" >&2; exit 1`)
	_, err = NewT2P(failing, "tree", time.Second).Transcribe(context.Background(), "fish")
	assert.ErrorContains(t, err, "no tree")

	_, err = NewT2P(filepath.Join(t.TempDir(), "missing"), "tree", time.Second).Transcribe(context.Background(), "fish")
	assert.Error(t, err)
}
