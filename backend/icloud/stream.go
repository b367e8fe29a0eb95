package icloud

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const streamUrlPrefix = "https://www.icloud.com/sharedalbum/#"

var (
	ErrInvalidAlbumUrl    = errors.New("invalid shared album URL")
	ErrInvalidStreamToken = errors.New("invalid stream token")
)

var streamTokenPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ParseAlbumUrl extracts the stream token from a full shared album URL
// like https://www.icloud.com/sharedalbum/#B2D...
func ParseAlbumUrl(albumUrl string) (string, error) {
	if !strings.HasPrefix(albumUrl, streamUrlPrefix) {
		return "", fmt.Errorf("%w: expected an URL like %sB2D...", ErrInvalidAlbumUrl, streamUrlPrefix)
	}

	token := strings.TrimSpace(albumUrl[len(streamUrlPrefix):])
	if !streamTokenPattern.MatchString(token) {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidStreamToken, token)
	}
	return token, nil
}

// StreamPartition derives the API host shard from the stream token.
// Tokens starting with "A" encode the partition in their second
// character, all others in their second and third. Tokens too short to
// carry the encoding map to partition zero.
func StreamPartition(token string) (int, error) {
	var encoded string
	if strings.HasPrefix(token, "A") {
		encoded = sliceToken(token, 1, 2)
	} else {
		encoded = sliceToken(token, 1, 3)
	}
	return Base62Decode(encoded)
}

func sliceToken(token string, from int, to int) string {
	if from > len(token) {
		from = len(token)
	}
	if to > len(token) {
		to = len(token)
	}
	return token[from:to]
}
