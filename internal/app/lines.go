package service

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// readLines loads all of r and splits it into lines. "\r\n", "\r" and "\n"
// each end a line; a terminator at the very end does not start a new one.
// Lines have no length limit. Input that is not valid UTF-8 is rejected.
func readLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, ErrMalformedInput)
	}
	return splitLines(string(data)), nil
}

func splitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		next := i + 1
		if text[i] == '\r' && next < len(text) && text[next] == '\n' {
			next++
		}
		text = text[next:]
	}
	return lines
}
