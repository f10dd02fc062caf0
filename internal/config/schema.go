package config

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/wesleyorama2/runcfg/pkg/jsonschema"
)

// documentSchemaJSON describes a configuration document before decoding.
const documentSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"clearMocks": { "type": "boolean" },
		"moduleFileExtensions": {
			"type": "array",
			"items": { "type": "string" }
		},
		"testMatch": {
			"type": "array",
			"items": { "type": "string" }
		},
		"preset": { "type": "string" },
		"transform": {
			"type": "object",
			"additionalProperties": {
				"oneOf": [
					{ "type": "string" },
					{
						"type": "array",
						"minItems": 1,
						"maxItems": 2,
						"prefixItems": [
							{ "type": "string" },
							{ "type": "object" }
						]
					}
				]
			}
		},
		"verbose": { "type": "boolean" }
	}
}`

var documentSchema = jsonschema.MustCompile("runcfg.schema.json", documentSchemaJSON)

// DocumentSchema returns the JSON Schema configuration documents are checked against.
func DocumentSchema() string {
	return documentSchemaJSON
}

// checkDocument validates a decoded document and converts schema errors
// into violations.
func checkDocument(doc interface{}) error {
	errs := &InvalidConfigurationError{}
	for _, fe := range documentSchema.Validate(doc) {
		errs.add(fieldFromPointer(fe.Location), InvariantSchema, "%s", fe.Message)
	}
	return errs.errOrNil()
}

// fieldFromPointer renders a JSON pointer like "/transform/^.+\.ts$/0" as
// `transform["^.+\\.ts$"][0]`. The root pointer becomes "(root)".
// Segments arrive URL-escaped from the schema validator ("%5E" for "^").
func fieldFromPointer(pointer string) string {
	if pointer == "" {
		return "(root)"
	}

	segments := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	var sb strings.Builder
	for i, seg := range segments {
		if unescaped, err := url.PathUnescape(seg); err == nil {
			seg = unescaped
		}
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		switch {
		case i == 0:
			sb.WriteString(seg)
		case isIndex(seg) && !(i == 1 && segments[0] == "transform"):
			sb.WriteString("[" + seg + "]")
		default:
			sb.WriteString("[" + strconv.Quote(seg) + "]")
		}
	}
	return sb.String()
}

func isIndex(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}
