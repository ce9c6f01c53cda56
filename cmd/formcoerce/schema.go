package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	formcoerce "github.com/reoring/formcoerce"
	"github.com/reoring/formcoerce/jsonschema"
	"github.com/reoring/formcoerce/openapi"
)

// schemaFlags selects the shape a command works with.
type schemaFlags struct {
	path      string
	format    string
	component string
	operation string
	mediaType string
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "schema", "s", "", "JSON Schema or OpenAPI document (JSON or YAML)")
	cmd.Flags().StringVar(&f.format, "format", "auto", "schema format: auto, jsonschema or openapi")
	cmd.Flags().StringVar(&f.component, "component", "", "OpenAPI components.schemas entry")
	cmd.Flags().StringVar(&f.operation, "operation", "", "OpenAPI operationId whose request body to use")
	cmd.Flags().StringVar(&f.mediaType, "media-type", "", "request body media type (default: first form type)")
	_ = cmd.MarkFlagRequired("schema")
}

// load reads the schema document and resolves the selected shape.
func (f *schemaFlags) load(ctx context.Context) (formcoerce.Describer, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	format := f.format
	if format == "auto" {
		format = detectFormat(data)
	}
	logger.Debug("loading schema",
		zap.String("path", filepath.Clean(f.path)),
		zap.String("format", format))

	switch format {
	case "jsonschema":
		return jsonschema.Parse(data)
	case "openapi":
		doc, err := openapi.Load(ctx, data, openapi.Options{})
		if err != nil {
			return nil, err
		}
		switch {
		case f.component != "":
			return doc.Component(f.component)
		case f.operation != "":
			return doc.RequestBody(f.operation, f.mediaType)
		}
		return nil, fmt.Errorf("openapi schema needs --component or --operation (components: %v)", doc.Components())
	}
	return nil, fmt.Errorf("unknown schema format %q", format)
}

// detectFormat treats documents with a top-level "openapi" key as OpenAPI.
func detectFormat(data []byte) string {
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err == nil {
		if _, ok := top["openapi"]; ok {
			return "openapi"
		}
	}
	return "jsonschema"
}
