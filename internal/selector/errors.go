package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOption is returned when a label resolves to neither a
	// catalog option nor a custom option.
	ErrUnknownOption = errors.New("unknown option")
	// ErrEmptyInput is returned when submitted text is blank after trimming.
	ErrEmptyInput = errors.New("empty input")
)

// Notice is an advisory signal returned alongside a successful call. It
// never aborts the operation.
type Notice int

const (
	NoticeNone Notice = iota
	// NoticeLimitReached means an addition was rejected because the
	// selection is full. The selection is unchanged.
	NoticeLimitReached
	// NoticeQualityWarning means the addition succeeded but the selection is
	// now large enough to hurt answer quality.
	NoticeQualityWarning
)

func (n Notice) String() string {
	switch n {
	case NoticeLimitReached:
		return "limit_reached"
	case NoticeQualityWarning:
		return "quality_warning"
	default:
		return ""
	}
}

// MarshalText encodes the notice as its String form.
func (n Notice) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText parses the String form. Unknown text is an error.
func (n *Notice) UnmarshalText(b []byte) error {
	switch string(b) {
	case "":
		*n = NoticeNone
	case "limit_reached":
		*n = NoticeLimitReached
	case "quality_warning":
		*n = NoticeQualityWarning
	default:
		return fmt.Errorf("unknown notice %q", b)
	}
	return nil
}
