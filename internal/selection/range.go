package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator splits the skip and take bounds of a selector string
const Separator = ":"

// Range is a parsed "skip:take" track selector.
//
// Offset is the number of leading tracks to skip (nil means 0).
// Limit is nil when there is no upper bound. A non-negative Limit is an
// absolute, exclusive end index; a negative Limit stops |Limit| tracks
// before the end of the list.
type Range struct {
	Offset *int
	Limit  *int
}

// ErrParse is matched by every error returned from Parse
var ErrParse = errors.New("selection: invalid range")

// ErrNegativeOffset is returned by Validate for a negative skip bound
var ErrNegativeOffset = errors.New("selection: offset must not be negative")

// ParseError describes a selector bound that is not a signed integer.
type ParseError struct {
	Input   string // Full selector text
	Segment string // Offending bound
	Err     error  // Underlying strconv error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("selection: invalid bound %q in %q: %v", e.Segment, e.Input, e.Err)
}

// Unwrap returns the strconv error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrParse) match any *ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Parse converts selector text such as "2:", ":-1" or "3:-2" into a Range.
//
// Empty input yields a Range with both bounds absent. Empty segments map to
// absent bounds. Negative offsets are accepted here and rejected by Validate.
func Parse(text string) (Range, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Range{}, nil
	}

	var r Range
	skip, take, hasTake := strings.Cut(text, Separator)

	offset, err := parseBound(text, skip)
	if err != nil {
		return Range{}, err
	}
	r.Offset = offset

	if hasTake {
		limit, err := parseBound(text, take)
		if err != nil {
			return Range{}, err
		}
		r.Limit = limit
	}

	return r, nil
}

// parseBound returns nil for an empty segment
func parseBound(input, segment string) (*int, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(segment)
	if err != nil {
		return nil, &ParseError{Input: input, Segment: segment, Err: err}
	}
	return &n, nil
}

// Validate rejects ranges whose offset is negative. A negative offset is not
// a from-the-end indicator.
func (r Range) Validate() error {
	if r.Offset != nil && *r.Offset < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeOffset, *r.Offset)
	}
	return nil
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool {
	return r.Offset == nil && r.Limit == nil
}

// String renders the range back into selector syntax.
func (r Range) String() string {
	var b strings.Builder
	if r.Offset != nil {
		b.WriteString(strconv.Itoa(*r.Offset))
	}
	b.WriteString(Separator)
	if r.Limit != nil {
		b.WriteString(strconv.Itoa(*r.Limit))
	}
	return b.String()
}
