// Package main implements the typeset CLI: local document generation and
// template inspection against the same rendering core the server uses.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yungbote/typeset-backend/internal/errdefs"
)

var rootCmd = &cobra.Command{
	Use:           "typeset",
	Short:         "Generate resumes and cover letters from structured data",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// Exit codes: 0 success, 2 invalid arguments, 3 validation error,
// 4 template not found, 5 compilation error, 1 anything else.
func exitCodeFor(err error) int {
	var te *errdefs.Error
	if !errors.As(err, &te) {
		return 1
	}
	switch te.Code {
	case errdefs.TplNotFound:
		return 4
	case errdefs.TplCompileFailed, errdefs.TplTypstCompileFailed, errdefs.TplPDFFailed:
		return 5
	case errdefs.APIInvalidParameter, errdefs.APIMissingParameter, errdefs.APIMalformedRequest:
		return 2
	}
	if te.Definition().Category == errdefs.CategoryValidation {
		return 3
	}
	return 1
}
