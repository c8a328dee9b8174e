//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func pipedStdin(t *testing.T, content string) *os.File {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("open pipe: %v", err)
	}
	t.Cleanup(func() {
		_ = reader.Close()
	})
	if _, err := writer.WriteString(content); err != nil {
		t.Fatalf("write pipe: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close pipe writer: %v", err)
	}
	return reader
}

func TestPromptNewPasswordFromPipe(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	password, err := promptNewPassword(pipedStdin(t, "Correct1Horse\nCorrect1Horse\n"), &out)
	if err != nil {
		t.Fatalf("promptNewPassword returned error: %v", err)
	}
	if password != "Correct1Horse" {
		t.Fatalf("expected piped password, got %q", password)
	}
	if !bytes.Contains(out.Bytes(), []byte("Repeat password: ")) {
		t.Fatalf("expected confirmation prompt, got %q", out.String())
	}
}

func TestPromptNewPasswordMismatch(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, err := promptNewPassword(pipedStdin(t, "Correct1Horse\nOther1Horse\n"), &out)
	if !errors.Is(err, ErrPasswordsMismatch) {
		t.Fatalf("expected ErrPasswordsMismatch, got %v", err)
	}
}
