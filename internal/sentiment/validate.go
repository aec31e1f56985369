package sentiment

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyText    = errors.New("text is empty")
	ErrTextTooLong  = errors.New("text is too long")
	ErrTooManyLines = errors.New("too many lines")
)

// ValidateText trims text and checks it against maxRunes (0 means no limit).
func ValidateText(text string, maxRunes int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if maxRunes > 0 && utf8.RuneCountInString(text) > maxRunes {
		return "", fmt.Errorf("%w: %d characters, limit is %d", ErrTextTooLong, utf8.RuneCountInString(text), maxRunes)
	}
	return text, nil
}

// SplitLines returns the non-empty, trimmed lines of input, at most maxLines of them.
func SplitLines(input string, maxLines int) ([]string, error) {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyText
	}
	if maxLines > 0 && len(lines) > maxLines {
		return nil, fmt.Errorf("%w: %d lines, limit is %d", ErrTooManyLines, len(lines), maxLines)
	}
	return lines, nil
}

// IsInputError reports whether err was caused by bad user input rather than a backend failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrTextTooLong) || errors.Is(err, ErrTooManyLines)
}
