package render

import (
	"errors"
	"fmt"
)

// ErrPageNotFound is returned when rasterizing a page index the page set does not have.
var ErrPageNotFound = errors.New("page not found")

// ErrPageTooLarge is returned when a bitmap would exceed MaxBitmapPixels.
var ErrPageTooLarge = errors.New("page too large to rasterize")

// ArtifactError reports a failed temporary file operation together with the offending path.
type ArtifactError struct {
	Op   string
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("render artifact %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// StageError reports an out of order render step.
type StageError struct {
	From Stage
	To   Stage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("render: illegal transition %s -> %s", e.From, e.To)
}
