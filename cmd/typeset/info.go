package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/templates"
	"github.com/yungbote/typeset-backend/internal/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <doc_type> <template>",
	Short: "Show metadata for a registered template",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errdefs.E(errdefs.APIInvalidParameter, "expected <doc_type> <template>, got %d arguments", len(args))
	}
	info, err := templates.Get(types.DocumentType(args[0]), args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Name:            %s\n", info.Name)
	fmt.Fprintf(os.Stdout, "Document type:   %s\n", info.DocumentType)
	fmt.Fprintf(os.Stdout, "Description:     %s\n", info.Description)
	fmt.Fprintf(os.Stdout, "Required fields: %s\n", strings.Join(info.RequiredFields, ", "))
	return nil
}
