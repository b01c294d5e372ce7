package wire

import "errors"

// ErrMissingGeometry reports a recording whose metadata carries no wire
// radii (no r0 key). The recording is skipped; the batch continues.
var ErrMissingGeometry = errors.New("no wire radii found in meta parameters")

// ErrUnstableRotation reports a recording whose disc speed varies by more
// than 1% between rotations, or whose edge stream is too short to classify.
// Such data cannot be trusted for angle interpolation and the recording is
// skipped; the batch continues.
var ErrUnstableRotation = errors.New("disc rotation speed is not stable")
