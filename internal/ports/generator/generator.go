package generator

import "context"

// Prompt es lo que viaja al generador: instrucción (system), contexto (user)
// y opcionalmente el contrato de forma que debe respetar la salida.
type Prompt struct {
	Stage    string
	System   string
	User     string
	Contract *Contract

	Temperature float32
}

// Generator es el colaborador externo de generación de texto.
// Devuelve el texto crudo del sobre de respuesta; parsear/validar es trabajo del gateway.
// Cualquier error devuelto se interpreta como falla de transporte/auth.
type Generator interface {
	Name() string
	Generate(ctx context.Context, p Prompt) (string, error)
}
