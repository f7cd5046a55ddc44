package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mind-engage/introscore/internal/scoring"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitInput   = 2 // transcript rejected by validation
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, scoring.ErrEmptyTranscript) || errors.Is(err, scoring.ErrTranscriptTooShort) {
			os.Exit(ExitInput)
		}
		os.Exit(ExitError)
	}
}
