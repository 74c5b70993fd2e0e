package clients

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// T2P runs the t2p letter-to-phoneme binary against a decision tree.
type T2P struct {
	Command string
	Tree    string
	Timeout time.Duration
}

func NewT2P(command, tree string, timeout time.Duration) *T2P {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &T2P{Command: command, Tree: tree, Timeout: timeout}
}

// Transcribe writes word to a temporary file and runs
// `t2p -transcribe <tree> <file>`. The first output field echoes the word;
// the rest are phonemes.
func (t *T2P) Transcribe(ctx context.Context, word string) ([]string, error) {
	f, err := os.CreateTemp("", "t2p-*.txt")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(word + "\n"); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Command, "-transcribe", t.Tree, f.Name())
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("t2p %q: %w: %s", word, err, msg)
		}
		return nil, fmt.Errorf("t2p %q: %w", word, err)
	}

	fields := strings.Fields(stdout.String())
	if len(fields) < 2 {
		return nil, fmt.Errorf("t2p %q: empty output", word)
	}
	return fields[1:], nil
}
