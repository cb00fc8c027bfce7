package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/typeset-backend/internal/templates"
	"github.com/yungbote/typeset-backend/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered templates by document type",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	byType := templates.List("")
	docTypes := make([]types.DocumentType, 0, len(byType))
	for dt := range byType {
		docTypes = append(docTypes, dt)
	}
	sort.Slice(docTypes, func(i, j int) bool { return docTypes[i] < docTypes[j] })
	for _, dt := range docTypes {
		fmt.Fprintf(os.Stdout, "%s: %s\n", dt, strings.Join(byType[dt], ", "))
	}
	return nil
}
