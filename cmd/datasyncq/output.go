package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the query failed: translation, transport or service error
	ExitCommandError = 2 // bad flags, arguments or configuration
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns ExitFailure for errors that are not an *ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text, json or yaml.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Print writes one document. Text output uses the value's own formatting.
func (f *OutputFormatter) Print(value any) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	}
	_, err := fmt.Fprintln(f.Writer, value)
	return err
}

// PrintLine writes one item per line: compact json in text and json mode,
// a one-entry yaml sequence otherwise.
func (f *OutputFormatter) PrintLine(value any) error {
	if f.Format == "yaml" {
		return f.Print([]any{value})
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.Writer, string(data))
	return err
}
