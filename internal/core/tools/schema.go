package tools

import "github.com/sashabaranov/go-openai/jsonschema"

func object(props map[string]jsonschema.Definition, required ...string) jsonschema.Definition {
	if props == nil {
		props = map[string]jsonschema.Definition{}
	}
	return jsonschema.Definition{Type: jsonschema.Object, Properties: props, Required: required}
}

func str(description string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.String, Description: description}
}

func num(description string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.Number, Description: description}
}

func boolean(description string) jsonschema.Definition {
	return jsonschema.Definition{Type: jsonschema.Boolean, Description: description}
}

func day() jsonschema.Definition {
	return str("Day of the week, e.g. Monday")
}

// catalogue lists every built-in tool, reads first.
func catalogue(store KnowledgeStore) []*Tool {
	return append(readTools(store), writeTools(store)...)
}
