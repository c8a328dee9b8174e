package cli

import (
	"errors"
	"io"
	"strings"
)

// readLine reads up to the next newline one byte at a time so that a second
// prompt on the same stream still sees its own line.
func readLine(input io.Reader) (string, error) {
	var (
		line []byte
		next = make([]byte, 1)
	)
	for {
		read, err := input.Read(next)
		if read > 0 {
			if next[0] == '\n' {
				break
			}
			line = append(line, next[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				break
			}
			return "", err
		}
	}
	return strings.TrimRight(string(line), "\r"), nil
}
