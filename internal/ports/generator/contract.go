package generator

import "encoding/json"

// Contract es el contrato de forma que se pide al generador.
// Name se usa como nombre del schema en proveedores que lo exigen (OpenAI).
type Contract struct {
	Name        string
	Description string
	Schema      *Schema
}

// Schema es un subconjunto de JSON Schema: lo que soportan todos los proveedores
// más los límites de arrays, que el gateway valida localmente.
type Schema struct {
	Type                 string             `json:"type"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	MinItems             *int               `json:"minItems,omitempty"`
	MaxItems             *int               `json:"maxItems,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
}

const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeInteger = "integer"
)

func Object(props map[string]*Schema, required ...string) *Schema {
	no := false
	return &Schema{
		Type:                 TypeObject,
		Properties:           props,
		Required:             required,
		AdditionalProperties: &no,
	}
}

func ArrayOf(items *Schema, minItems, maxItems int) *Schema {
	s := &Schema{Type: TypeArray, Items: items}
	if minItems > 0 {
		s.MinItems = &minItems
	}
	if maxItems > 0 {
		s.MaxItems = &maxItems
	}
	return s
}

func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func Enum(description string, values ...string) *Schema {
	return &Schema{Type: TypeString, Description: description, Enum: values}
}

func Integer(description string, minimum, maximum float64) *Schema {
	return &Schema{Type: TypeInteger, Description: description, Minimum: &minimum, Maximum: &maximum}
}

// JSON serializa el schema. Nunca falla con los tipos de arriba.
func (s *Schema) JSON() json.RawMessage {
	b, err := json.Marshal(s)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
