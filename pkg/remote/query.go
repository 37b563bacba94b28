package remote

import (
	"context"
	"fmt"
	"strings"
)

// Sender transmits raw command text and returns the reply.
type Sender interface {
	Send(ctx context.Context, command string) (string, error)
}

// Query renders cmd and sends it through s.
func Query(ctx context.Context, s Sender, cmd Command) (string, error) {
	text, err := cmd.Render()
	if err != nil {
		return "", err
	}
	return s.Send(ctx, text)
}

// QueryNumber sends cmd and parses the reply as a number.
func QueryNumber(ctx context.Context, s Sender, cmd Command) (float64, error) {
	text, err := cmd.Render()
	if err != nil {
		return 0, err
	}
	reply, err := s.Send(ctx, text)
	if err != nil {
		return 0, err
	}
	v, err := ParseNumber(reply)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Command = text
		}
		return 0, err
	}
	return v, nil
}

// PlaybackRange queries both bounds of the host's playback range.
func PlaybackRange(ctx context.Context, s Sender) (start, end float64, err error) {
	start, err = QueryNumber(ctx, s, PlaybackQuery{Bound: BoundMin})
	if err != nil {
		return 0, 0, fmt.Errorf("query playback min: %w", err)
	}
	end, err = QueryNumber(ctx, s, PlaybackQuery{Bound: BoundMax})
	if err != nil {
		return 0, 0, fmt.Errorf("query playback max: %w", err)
	}
	return start, end, nil
}

// HostVersion queries the host application's version.
func HostVersion(ctx context.Context, s Sender) (string, error) {
	text, err := VersionQuery{}.Render()
	if err != nil {
		return "", err
	}
	reply, err := s.Send(ctx, text)
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(reply)
	if v == "" {
		return "", &ParseError{Command: text, Reply: reply, Err: ErrEmptyReply}
	}
	return v, nil
}
