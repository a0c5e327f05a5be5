package marker

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8 = errors.New("tag is not valid utf-8")
)

// TagDecodeError reports a marker whose tag bytes cannot be decoded. It ends
// the scan of the buffer it occurs in.
type TagDecodeError struct {
	Raw []byte
	Pos Pos
}

func (e *TagDecodeError) Unwrap() error {
	return ErrBadUTF8
}

func (e *TagDecodeError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Pos, ErrBadUTF8, e.Raw)
}
