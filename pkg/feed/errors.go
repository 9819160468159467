package feed

import "errors"

var (
	ErrFeedClosed      = errors.New("event feed is closed")
	ErrInvalidRedisURL = errors.New("invalid redis connection URL")
	ErrRedisNotReady   = errors.New("redis did not become ready within the connect timeout")
)
