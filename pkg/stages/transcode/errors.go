package transcode

import (
	"errors"
	"fmt"
)

// ErrEncoderFailed is matched by every ExitError.
var ErrEncoderFailed = errors.New("transcode: encoder failed")

// ExitError reports an encoder that ran but exited with a non-zero status.
type ExitError struct {
	InputPath string
	ExitCode  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("transcode: encoder exited with status %d converting %s", e.ExitCode, e.InputPath)
}

// Is reports whether target is ErrEncoderFailed.
func (e *ExitError) Is(target error) bool {
	return target == ErrEncoderFailed
}
