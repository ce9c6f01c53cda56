package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	formcoerce "github.com/reoring/formcoerce"
)

// Options controls document loading.
type Options struct {
	// AllowExternalRefs lets the loader follow references to other files.
	AllowExternalRefs bool
	// Validate runs kin-openapi document validation after loading.
	Validate bool
}

// preferredMediaTypes is the lookup order when no media type is requested.
var preferredMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Document is a loaded OpenAPI document.
type Document struct {
	spec *openapi3.T
}

// Load parses an OpenAPI 3 document (JSON or YAML).
func Load(ctx context.Context, data []byte, opt Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opt.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opt.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate document: %w", err)
		}
	}
	return &Document{spec: spec}, nil
}

// Components lists the names under components.schemas in sorted order.
func (d *Document) Components() []string {
	if d.spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Component describes components.schemas[name].
func (d *Document) Component(name string) (formcoerce.Describer, error) {
	path := formcoerce.RootPath().Field("components").Field("schemas").Field(name)
	if d.spec.Components == nil {
		return nil, formcoerce.Issues{path.Issue(formcoerce.CodeUnresolvedRef, "document has no components", nil)}
	}
	ref, ok := d.spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, formcoerce.Issues{path.Issue(formcoerce.CodeUnresolvedRef, fmt.Sprintf("component %q not found", name), nil)}
	}
	return FromSchemaRef(ref), nil
}

// RequestBody describes the request body of operationID. An empty mediaType
// picks the first form-friendly media type the operation declares.
func (d *Document) RequestBody(operationID, mediaType string) (formcoerce.Describer, error) {
	op, path := d.operation(operationID)
	if op == nil {
		return nil, formcoerce.Issues{formcoerce.RootPath().Field("paths").Issue(formcoerce.CodeUnresolvedRef, fmt.Sprintf("operation %q not found", operationID), nil)}
	}
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, formcoerce.Issues{path.Field("requestBody").Issue(formcoerce.CodeUnresolvedRef, "operation has no request body", nil)}
	}
	content := op.RequestBody.Value.Content
	candidates := preferredMediaTypes
	if mediaType != "" {
		candidates = []string{mediaType}
	}
	for _, mt := range candidates {
		if media := content.Get(mt); media != nil && media.Schema != nil && media.Schema.Value != nil {
			return FromSchemaRef(media.Schema), nil
		}
	}
	return nil, formcoerce.Issues{path.Field("requestBody").Field("content").Issue(formcoerce.CodeUnsupported, fmt.Sprintf("no schema for media types %v", candidates), nil)}
}

func (d *Document) operation(id string) (*openapi3.Operation, formcoerce.PathRef) {
	if d.spec.Paths == nil {
		return nil, nil
	}
	paths := d.spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, p := range keys {
		item := paths[p]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op != nil && op.OperationID == id {
				return op, formcoerce.RootPath().Field("paths").Field(p).Field(method)
			}
		}
	}
	return nil, nil
}
