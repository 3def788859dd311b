package commands

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures that did not already carry a
// category.
const (
	TextCodeInvalidMessage = "PORTFOLIO_COMMAND_INVALID_MESSAGE"
	TextCodeCancelled      = "PORTFOLIO_COMMAND_CANCELLED"
	TextCodeTimedOut       = "PORTFOLIO_COMMAND_TIMED_OUT"
	TextCodeInterrupted    = "PORTFOLIO_COMMAND_INTERRUPTED"
	TextCodeFailed         = "PORTFOLIO_COMMAND_FAILED"
)

type failureStage int

const (
	stageValidate failureStage = iota
	stageContext
	stageRun
)

// commandFailure categorises err for the command named by label. Errors that
// already carry a go-errors category, such as the resolver's not_found or
// validation errors, are returned unchanged so callers can still classify
// them.
func commandFailure(label string, stage failureStage, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	category, code, outcome := goerrors.CategoryCommand, TextCodeFailed, "failed"
	switch {
	case stage == stageValidate:
		category, code, outcome = goerrors.CategoryValidation, TextCodeInvalidMessage, "rejected its message"
	case errors.Is(err, context.DeadlineExceeded):
		code, outcome = TextCodeTimedOut, "ran past its deadline"
	case errors.Is(err, context.Canceled):
		code, outcome = TextCodeCancelled, "was cancelled"
	case stage == stageContext:
		code, outcome = TextCodeInterrupted, "was interrupted"
	}

	return goerrors.Wrap(err, category, fmt.Sprintf("%s %s", label, outcome)).
		WithTextCode(code).
		WithMetadata(map[string]any{"command": label})
}
