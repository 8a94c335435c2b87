// Command vecsolve searches for the non-negative integer solution of a
// system of two linear equations in A and B.
package main

import (
	"context"
	"os"

	"github.com/agbru/vecsolve/internal/app"
	apperrors "github.com/agbru/vecsolve/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
