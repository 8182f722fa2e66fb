// Package callback encodes and decodes the action tokens carried by inline
// keyboard buttons. The wire format is colon-delimited: "toggle:<id>:<bool>"
// or "page:<index>". This package is the single source of truth for that
// format.
package callback

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	delimiter = ":"
	tagToggle = "toggle"
	tagPage   = "page"

	// Telegram rejects callback data above 64 bytes.
	maxTokenLen = 64
)

// Action is a decoded button press: either a ToggleAction or a PageAction.
type Action interface {
	isAction()
}

// ToggleAction flips a user's approval flag. Approved is the state the
// button was rendered with, so the handler applies the inverse.
type ToggleAction struct {
	TargetID string
	Approved bool
}

// PageAction moves the pressing operator's listing to Index.
type PageAction struct {
	Index int
}

func (ToggleAction) isAction() {}
func (PageAction) isAction()   {}

// DecodeError reports a malformed action token.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode action token: " + e.Reason
}

// EncodeToggle builds a toggle token for target id and its current approval
// state. Ids containing the delimiter cannot round-trip and are rejected, as
// are tokens over the transport's size limit.
func EncodeToggle(id string, approved bool) (string, error) {
	if id == "" {
		return "", fmt.Errorf("encode toggle token: empty target id")
	}
	if strings.Contains(id, delimiter) {
		return "", fmt.Errorf("encode toggle token: id %q contains %q", id, delimiter)
	}
	token := tagToggle + delimiter + id + delimiter + strconv.FormatBool(approved)
	if len(token) > maxTokenLen {
		return "", fmt.Errorf("encode toggle token: %d bytes exceeds %d byte limit", len(token), maxTokenLen)
	}
	return token, nil
}

// EncodePage builds a page navigation token for the given page index.
func EncodePage(index int) string {
	return tagPage + delimiter + strconv.Itoa(index)
}

// Decode parses a token back into its typed action. All failures return a
// *DecodeError; a malformed token is never partially applied.
func Decode(token string) (Action, error) {
	fields := strings.Split(token, delimiter)
	switch fields[0] {
	case tagToggle:
		if len(fields) != 3 {
			return nil, &DecodeError{Reason: fmt.Sprintf("toggle token has %d fields, want 3", len(fields))}
		}
		if fields[1] == "" {
			return nil, &DecodeError{Reason: "toggle token has empty target id"}
		}
		approved, err := strconv.ParseBool(fields[2])
		if err != nil {
			return nil, &DecodeError{Reason: fmt.Sprintf("toggle token has invalid state %q", fields[2])}
		}
		return ToggleAction{TargetID: fields[1], Approved: approved}, nil
	case tagPage:
		if len(fields) != 2 {
			return nil, &DecodeError{Reason: fmt.Sprintf("page token has %d fields, want 2", len(fields))}
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &DecodeError{Reason: fmt.Sprintf("page token has invalid index %q", fields[1])}
		}
		if index < 0 {
			return nil, &DecodeError{Reason: fmt.Sprintf("page token has negative index %d", index)}
		}
		return PageAction{Index: index}, nil
	default:
		return nil, &DecodeError{Reason: fmt.Sprintf("unknown tag %q", fields[0])}
	}
}
