// Command superpi computes decimal digits of π with arbitrary-precision
// arithmetic, either as a CLI tool or as an HTTP service.
package main

import (
	"context"
	"os"

	"github.com/xmb505/SuperPi/internal/app"
	apperrors "github.com/xmb505/SuperPi/internal/errors"
)

func main() {
	os.Exit(run())
}

// run is separated from main so deferred cleanup executes before os.Exit.
func run() int {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
