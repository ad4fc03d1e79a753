package common

import (
	"context"
	"fmt"

	"resumescan/internal/errors"
)

// CreateInputFunc defines how to create the specific pipeline input from the
// validated file arguments.
type CreateInputFunc[Input any] func(paths []string) (Input, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// ScanOperationFunc is a generic function signature for any scan pipeline operation with context.
type ScanOperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// RunScanCommand encapsulates the common logic for file-based CLI commands.
func RunScanCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	createInput CreateInputFunc[Input],
	operation ScanOperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	// Pass the logger when creating helpers
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	if err := fileProcessor.ValidateDocuments(args...); err != nil {
		return err
	}

	input, err := createInput(args)
	if err != nil {
		return fmt.Errorf("failed to create input from file arguments: %w", err)
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
