package main

import (
	"os"

	"github.com/ariel-frischer/autochangelog/internal/cli"
	clierrors "github.com/ariel-frischer/autochangelog/internal/errors"
)

func main() {
	os.Exit(clierrors.ExitCode(cli.Execute()))
}
