package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// SchemaFileName is the file name the schema is published under. Sample
// configs point their yaml-language-server header at it.
const SchemaFileName = "analyzer-config.json"

// Schema returns the JSON schema of Config.
func Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	return json.MarshalIndent(schema, "", "  ")
}

// SampleYAML returns the default config as YAML, headed by a
// yaml-language-server comment pointing at schemaName.
func SampleYAML(schemaName string) ([]byte, error) {
	body, err := yaml.Marshal(Default())
	if err != nil {
		return nil, err
	}

	return append([]byte(SchemaReference(schemaName)), body...), nil
}

// SchemaReference returns the yaml-language-server header line for schemaName.
func SchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}
