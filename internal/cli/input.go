package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/spamsift/internal/common"
)

// maxLineBytes bounds a single message line.
const maxLineBytes = 1 << 20

// ReadMessages reads one message per line from r, skipping blank lines.
func ReadMessages(ctx context.Context, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var messages []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		messages = append(messages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}

// ReadMessage reads all of r as a single message.
func ReadMessage(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	return ValidateMessage(string(data))
}

// ValidateMessage trims text and rejects empty input.
func ValidateMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", common.NewUserError("Please enter a valid SMS message.", common.ErrInvalidInput)
	}
	return text, nil
}
