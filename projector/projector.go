// Package projector groups a resolved document's operations into
// controllers, producing the intermediate representation that code
// emitters consume.
//
// A controller is named by an operation's first tag; untagged operations
// fall into the Default controller. Operations without an operationId, and
// operations whose operationId carries the internal controller marker, are
// dropped — they cannot be emitted as callable methods.
package projector

import (
	"strings"

	"github.com/oasforge/oasforge/normalizer"
)

// DefaultController is the controller that receives untagged operations.
const DefaultController = "Default"

// internalMarker flags operationIds that belong to framework-internal
// routing rather than the public API surface.
const internalMarker = "Controller_"

// IR is the emitter-facing view of a resolved document.
type IR struct {
	// Name is the API title from the info object.
	Name string
	// Description is the API description, possibly empty.
	Description string
	// Version is the API version string from the info object.
	Version string
	// BaseURL is the first server URL, or empty when none is declared.
	BaseURL string
	// ControllerNames lists controllers in first-appearance order:
	// document-level tags first, then tags discovered on operations.
	ControllerNames []string
	// Controllers maps controller name to its operations in document order.
	// A declared tag with no operations maps to an empty slice.
	Controllers map[string][]Operation
	// Components carries the resolved component sections for model emission.
	Components normalizer.Components
}

// Operation is a single emittable API operation.
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Parameters  []any
	RequestBody map[string]any
	Responses   map[string]any
}

// Projector builds IRs from resolved documents.
type Projector struct{}

// New creates a new Projector instance
func New() *Projector {
	return &Projector{}
}

// Project groups the document's operations by controller. The input
// document is expected to be resolved; the projector does not inspect
// $ref nodes.
func (p *Projector) Project(doc *normalizer.Document) *IR {
	ir := &IR{
		Name:        doc.Info.Title,
		Description: doc.Info.Description,
		Version:     doc.Info.Version,
		BaseURL:     doc.BaseURL(),
		Controllers: map[string][]Operation{},
		Components:  doc.Components,
	}

	// Document-level tags declare controllers even before any operation
	// references them
	for _, tag := range doc.Tags {
		m, ok := tag.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name != "" {
			ir.addController(name)
		}
	}

	for _, item := range doc.Paths {
		for _, op := range item.Operations {
			operationID, _ := op.Raw["operationId"].(string)
			if operationID == "" || strings.Contains(operationID, internalMarker) {
				continue
			}

			controller := firstTag(op.Raw)
			ir.addController(controller)

			summary, _ := op.Raw["summary"].(string)
			parameters, _ := op.Raw["parameters"].([]any)
			requestBody, _ := op.Raw["requestBody"].(map[string]any)
			responses, _ := op.Raw["responses"].(map[string]any)

			ir.Controllers[controller] = append(ir.Controllers[controller], Operation{
				Method:      op.Method,
				Path:        item.Path,
				OperationID: operationID,
				Summary:     summary,
				Parameters:  parameters,
				RequestBody: requestBody,
				Responses:   responses,
			})
		}
	}

	return ir
}

// addController registers a controller on first sight, preserving
// appearance order.
func (ir *IR) addController(name string) {
	if _, ok := ir.Controllers[name]; ok {
		return
	}
	ir.Controllers[name] = []Operation{}
	ir.ControllerNames = append(ir.ControllerNames, name)
}

// firstTag returns the operation's first tag, or the default controller
// name when the operation is untagged.
func firstTag(raw map[string]any) string {
	tags, ok := raw["tags"].([]any)
	if !ok || len(tags) == 0 {
		return DefaultController
	}
	name, _ := tags[0].(string)
	if name == "" {
		return DefaultController
	}
	return name
}
