package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// --- Transcription (/transcribe) ---
type TranscribeReq struct {
	Word string `json:"word"`
}
type TranscribeResp struct {
	Phonemes []string `json:"phonemes"`
}

// Transcribe asks the service for the ARPAbet phonemes of word.
func (h *HTTP) Transcribe(ctx context.Context, word string) ([]string, error) {
	payload, err := json.Marshal(TranscribeReq{Word: word})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(h.url, "/")+"/transcribe", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcribe %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out TranscribeResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("transcribe decode: %w", err)
	}
	if len(out.Phonemes) == 0 {
		return nil, fmt.Errorf("transcribe %q: no phonemes", word)
	}
	return out.Phonemes, nil
}
