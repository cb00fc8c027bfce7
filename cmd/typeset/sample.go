package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/templates"
	"github.com/yungbote/typeset-backend/internal/types"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <doc_type> <out_file>",
	Short: "Write the example data payload for a document type",
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errdefs.E(errdefs.APIInvalidParameter, "expected <doc_type> <out_file>, got %d arguments", len(args))
	}
	docType := types.DocumentType(args[0])
	if !docType.Valid() {
		return errdefs.E(errdefs.APIInvalidParameter, "document_type '%s' is not supported", docType)
	}
	raw, err := json.MarshalIndent(templates.ExampleData(docType), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write sample file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s sample to %s\n", docType, args[1])
	return nil
}
