package datatune

import "github.com/pkg/errors"

// The error taxonomy shared by every stage of the pipeline. Stages wrap these
// with context; callers test with errors.Is.
var (
	// ErrInvalidArgument is returned for missing or out-of-range input to a
	// constructor. Nothing is partially constructed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFormat is returned for malformed rows and unrecognised date shapes.
	ErrFormat = errors.New("bad format")
	// ErrStructure is returned when bar or track lengths do not line up.
	ErrStructure = errors.New("structural inconsistency")
	// ErrUnimplemented is returned by generation variants that exist by name
	// only.
	ErrUnimplemented = errors.New("unimplemented")
)
