package domain

import "errors"

var (
	ErrUnknownClass   = errors.New("unknown sentiment class")
	ErrEmptyEmojiList = errors.New("no emoji configured for class")
	ErrRejected       = errors.New("rejected by chat platform")
)
