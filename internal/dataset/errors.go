package dataset

import "errors"

var (
	// ErrUnknownClass marks a CSV class name missing from the ClassMap.
	ErrUnknownClass = errors.New("unknown class")
	// ErrMalformedRow marks a CSV row with the wrong field count or a bad frame id.
	ErrMalformedRow = errors.New("malformed annotation row")
	// ErrNoAnnotations marks a video unit without an annotation CSV.
	ErrNoAnnotations = errors.New("annotation file not found")
	// ErrInvalidStride marks a sampling stride below 1.
	ErrInvalidStride = errors.New("invalid stride")
)
