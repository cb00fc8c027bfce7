package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/typeset-backend/internal/app"
	"github.com/yungbote/typeset-backend/internal/cache"
	"github.com/yungbote/typeset-backend/internal/docx"
	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/render"
	"github.com/yungbote/typeset-backend/internal/types"
	"github.com/yungbote/typeset-backend/internal/typst"
)

var generateCmd = &cobra.Command{
	Use:   "generate <doc_type> <template> <input.json|.yaml> <output>",
	Short: "Render a document from a data file",
	RunE:  runGenerate,
}

var (
	generateFormat  string
	generateSpacing string
	generateUltra   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "pdf", "Output format: pdf, typst, docx")
	generateCmd.Flags().StringVar(&generateSpacing, "spacing", "", "Spacing mode: normal, compact, ultra-compact")
	generateCmd.Flags().BoolVar(&generateUltra, "ultra", false, "Run the normalizing (ultra) validator")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) != 4 {
		return errdefs.E(errdefs.APIInvalidParameter, "expected <doc_type> <template> <input> <output>, got %d arguments", len(args))
	}
	docType := types.DocumentType(args[0])
	templateName, inputPath, outputPath := args[1], args[2], args[3]

	data, err := loadDataFile(inputPath)
	if err != nil {
		return err
	}

	log, err := logger.New("production")
	if err != nil {
		return err
	}
	defer log.Sync()
	cfg := app.LoadConfig(nil)

	// Local generation runs cache-less: a nil store puts the cache in
	// disabled mode.
	documentCache := cache.New(nil, cache.Config{}, log)
	compiler := typst.New(typst.Config{Bin: cfg.TypstBin, FontDir: cfg.FontDir, MaxConcurrent: 1}, log)
	orchestrator := render.New(render.Config{
		MaxArtifactBytes: cfg.MaxPDFSizeBytes,
		Timeout:          cfg.RequestTimeout,
	}, log, documentCache, compiler, docx.NewGenerator(log))

	format, ok := types.NormalizeFormat(generateFormat)
	if !ok {
		return errdefs.E(errdefs.APIInvalidParameter, "format '%s' is not supported", generateFormat)
	}

	artifact, err := orchestrator.Generate(context.Background(), &types.DocumentRequest{
		DocumentType:    docType,
		Template:        templateName,
		Format:          format,
		Data:            data,
		UltraValidation: generateUltra,
		SpacingMode:     types.SpacingMode(generateSpacing),
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, artifact.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Generated %s (%d bytes)\n", outputPath, len(artifact.Bytes))
	return nil
}

func loadDataFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.APIInvalidParameter, "failed to read input file %s", path)
	}
	var data map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, errdefs.Wrap(err, errdefs.ValInvalidYAML, "input file is not valid YAML: %s", err.Error())
		}
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, errdefs.Wrap(err, errdefs.ValInvalidJSON, "input file is not valid JSON: %s", err.Error())
		}
	}
	return data, nil
}
