package customize

import "fmt"

// GenerationError reports a failed model call in the AI strategy.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ReplyError reports a model reply that does not satisfy the output contract.
type ReplyError struct {
	Message string
	Cause   error
}

func (e *ReplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid model reply: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid model reply: %s", e.Message)
}

func (e *ReplyError) Unwrap() error {
	return e.Cause
}
