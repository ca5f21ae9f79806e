// Package contract describes the prompt HTTP API as an OpenAPI 3 document.
package contract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

const (
	SchemaPrompt        = "Prompt"
	SchemaPromptList    = "PromptList"
	SchemaCreatePrompt  = "CreatePromptRequest"
	SchemaUpdatePrompt  = "UpdatePromptRequest"
	SchemaMessage       = "MessageResponse"
	SchemaErrorResponse = "ErrorResponse"

	Version = "1.0.0"
)

func schemaRef(name string, schemas openapi3.Schemas) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schemas[name].Value)
}

func newSchemas() openapi3.Schemas {
	prompt := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("content", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema().WithNullable()).
		WithProperty("created_at", openapi3.NewDateTimeSchema()).
		WithProperty("updated_at", openapi3.NewDateTimeSchema())
	prompt.Required = []string{"id", "title", "content", "created_at", "updated_at"}

	create := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("content", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema().WithNullable())
	create.Required = []string{"title", "content"}

	update := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("content", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema().WithNullable())

	message := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema())
	message.Required = []string{"message"}

	errorResponse := openapi3.NewObjectSchema().
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("error", openapi3.NewStringSchema())

	schemas := openapi3.Schemas{
		SchemaPrompt:        openapi3.NewSchemaRef("", prompt),
		SchemaCreatePrompt:  openapi3.NewSchemaRef("", create),
		SchemaUpdatePrompt:  openapi3.NewSchemaRef("", update),
		SchemaMessage:       openapi3.NewSchemaRef("", message),
		SchemaErrorResponse: openapi3.NewSchemaRef("", errorResponse),
	}
	schemas[SchemaPromptList] = openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(prompt))

	return schemas
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema),
	}
}

func jsonBody(schema *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schema),
	}
}

func idParameter() openapi3.Parameters {
	return openapi3.Parameters{
		&openapi3.ParameterRef{
			Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewInt64Schema()),
		},
	}
}

func newOperation(id, summary string, responses ...openapi3.NewResponsesOption) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Tags = []string{"prompts"}
	op.Responses = openapi3.NewResponses(responses...)
	return op
}

// Document builds the OpenAPI description of the prompt endpoints. Paths are
// relative to the API base URL.
func Document() *openapi3.T {
	schemas := newSchemas()
	prompt := schemaRef(SchemaPrompt, schemas)
	notFound := openapi3.WithStatus(404, jsonResponse("Prompt not found", schemaRef(SchemaErrorResponse, schemas)))
	badRequest := openapi3.WithStatus(400, jsonResponse("Title and content are required", schemaRef(SchemaErrorResponse, schemas)))

	list := newOperation("listPrompts", "List prompts",
		openapi3.WithStatus(200, jsonResponse("All prompts", schemaRef(SchemaPromptList, schemas))))

	create := newOperation("createPrompt", "Create a prompt",
		openapi3.WithStatus(201, jsonResponse("Created prompt", prompt)), badRequest)
	create.RequestBody = jsonBody(schemaRef(SchemaCreatePrompt, schemas))

	get := newOperation("getPrompt", "Get a prompt by id",
		openapi3.WithStatus(200, jsonResponse("The prompt", prompt)), notFound)
	get.Parameters = idParameter()

	update := newOperation("updatePrompt", "Partially update a prompt",
		openapi3.WithStatus(200, jsonResponse("Updated prompt", prompt)), notFound)
	update.Parameters = idParameter()
	update.RequestBody = jsonBody(schemaRef(SchemaUpdatePrompt, schemas))

	remove := newOperation("deletePrompt", "Delete a prompt",
		openapi3.WithStatus(200, jsonResponse("Deletion confirmation", schemaRef(SchemaMessage, schemas))), notFound)
	remove.Parameters = idParameter()

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Prompt API",
			Version: Version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/prompts", &openapi3.PathItem{Get: list, Post: create}),
			openapi3.WithPath("/prompts/{id}", &openapi3.PathItem{Get: get, Put: update, Delete: remove}),
		),
		Components: &openapi3.Components{Schemas: schemas},
	}
}

// Validate checks the document is well formed.
func Validate(ctx context.Context) error {
	return Document().Validate(ctx)
}

// JSON renders the document as indented JSON.
func JSON() ([]byte, error) {
	return json.MarshalIndent(Document(), "", "  ")
}

// YAML renders the document as YAML.
func YAML() ([]byte, error) {
	data, err := json.Marshal(Document())
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert JSON to YAML: %w", err)
	}
	return yaml.Marshal(doc)
}

// ValidateValue checks value against the named component schema. Structs are
// round-tripped through JSON first so field tags decide the shape.
func ValidateValue(schemaName string, value any) error {
	ref, ok := Document().Components.Schemas[schemaName]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", schemaName)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}

	return ref.Value.VisitJSON(generic)
}
