package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/linkmap/pkg/errors"
)

func main() {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// The run report has already been rendered in this case; just set
	// the exit code.
	if err == errRunFailed {
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, err)

	switch errors.GetErrorCode(err) {
	case errors.ErrManifestUnreadable, errors.ErrManifestNotFound, errors.ErrInvalidInput:
		os.Exit(2)
	default:
		os.Exit(1)
	}
}
