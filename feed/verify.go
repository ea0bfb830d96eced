package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Verify parses a serialized feed document back. The gofeed library detects
// RSS, Atom and JSON feeds automatically.
func Verify(data []byte) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	parsed, err := fp.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return parsed, nil
}

// VerifyItems parses data and checks that it holds exactly want items.
func VerifyItems(data []byte, want int) (*gofeed.Feed, error) {
	parsed, err := Verify(data)
	if err != nil {
		return nil, err
	}
	if len(parsed.Items) != want {
		return nil, fmt.Errorf("invalid feed: %d items, expected %d", len(parsed.Items), want)
	}
	return parsed, nil
}
