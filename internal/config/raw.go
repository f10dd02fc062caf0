package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Raw is a configuration document as authored. Every field is optional:
// a nil pointer or nil slice means the field was not present, which is
// different from an explicitly empty value.
type Raw struct {
	// ClearMocks resets mock call state between every test
	ClearMocks *bool `json:"clearMocks,omitempty" yaml:"clearMocks,omitempty"`

	// ModuleFileExtensions are tried in order when resolving unqualified module references
	ModuleFileExtensions []string `json:"moduleFileExtensions,omitempty" yaml:"moduleFileExtensions,omitempty"`

	// TestMatch are glob patterns selecting test suites
	TestMatch []string `json:"testMatch,omitempty" yaml:"testMatch,omitempty"`

	// Preset names a bundle of defaults resolved through a PresetLookup
	Preset *string `json:"preset,omitempty" yaml:"preset,omitempty"`

	// Transform maps file patterns to transformers, in document order
	Transform TransformRules `json:"transform,omitempty" yaml:"transform,omitempty"`

	// Verbose reports every test by name instead of a summary
	Verbose *bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Clone returns a deep copy of r.
func (r Raw) Clone() Raw {
	out := Raw{
		ModuleFileExtensions: cloneStrings(r.ModuleFileExtensions),
		TestMatch:            cloneStrings(r.TestMatch),
		Transform:            r.Transform.Clone(),
	}
	if r.ClearMocks != nil {
		out.ClearMocks = Bool(*r.ClearMocks)
	}
	if r.Verbose != nil {
		out.Verbose = Bool(*r.Verbose)
	}
	if r.Preset != nil {
		out.Preset = String(*r.Preset)
	}
	return out
}

// Bool returns a pointer to b, for building Raw values in code.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for building Raw values in code.
func String(s string) *string { return &s }

// TransformRule directs files whose path matches Pattern through Transformer.
type TransformRule struct {
	// Pattern is a regular expression matched against the file path
	Pattern string

	// Transformer identifies the external transformer
	Transformer string

	// Options are passed to the transformer verbatim; nil when none were given
	Options map[string]interface{}
}

// Clone returns a deep copy of the rule.
func (r TransformRule) Clone() TransformRule {
	r.Options = cloneOptions(r.Options)
	return r
}

// wireValue is the value form used in documents: the bare identifier, or
// an [identifier, options] pair when options are present.
func (r TransformRule) wireValue() interface{} {
	if r.Options == nil {
		return r.Transformer
	}
	return []interface{}{r.Transformer, r.Options}
}

// TransformRules is an ordered list of transform rules. In documents it is
// written as a mapping from pattern to transformer; the mapping's key order
// is the rule order.
type TransformRules []TransformRule

// Clone returns a deep copy. A nil receiver stays nil.
func (rs TransformRules) Clone() TransformRules {
	if rs == nil {
		return nil
	}
	out := make(TransformRules, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// set stores rule, replacing an earlier rule for the same pattern in place.
func (rs *TransformRules) set(rule TransformRule) {
	for i := range *rs {
		if (*rs)[i].Pattern == rule.Pattern {
			(*rs)[i] = rule
			return
		}
	}
	*rs = append(*rs, rule)
}

// MarshalJSON writes the rules as an object, preserving rule order.
func (rs TransformRules) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rule := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rule.Pattern)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(rule.wireValue())
		if err != nil {
			return nil, fmt.Errorf("transform[%q]: %w", rule.Pattern, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of pattern keys, keeping key order.
func (rs *TransformRules) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("transform must be an object mapping patterns to transformers")
	}

	rules := TransformRules{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		pattern := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("transform[%q]: %w", pattern, err)
		}
		rule, err := decodeJSONRule(pattern, value)
		if err != nil {
			return err
		}
		rules.set(rule)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*rs = rules
	return nil
}

func decodeJSONRule(pattern string, value json.RawMessage) (TransformRule, error) {
	rule := TransformRule{Pattern: pattern}

	var id string
	if err := json.Unmarshal(value, &id); err == nil {
		rule.Transformer = id
		return rule, nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(value, &pair); err != nil || len(pair) == 0 || len(pair) > 2 {
		return rule, fmt.Errorf("transform[%q]: expected a transformer name or a [name, options] pair", pattern)
	}
	if err := json.Unmarshal(pair[0], &rule.Transformer); err != nil {
		return rule, fmt.Errorf("transform[%q]: transformer name must be a string", pattern)
	}
	if len(pair) == 2 {
		if err := json.Unmarshal(pair[1], &rule.Options); err != nil {
			return rule, fmt.Errorf("transform[%q]: transformer options must be an object", pattern)
		}
	}
	return rule, nil
}

// MarshalYAML writes the rules as a mapping, preserving rule order.
func (rs TransformRules) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, rule := range rs {
		key := &yaml.Node{}
		key.SetString(rule.Pattern)

		value := &yaml.Node{}
		if err := value.Encode(rule.wireValue()); err != nil {
			return nil, fmt.Errorf("transform[%q]: %w", rule.Pattern, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping of pattern keys, keeping key order.
func (rs *TransformRules) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: transform must be a mapping of patterns to transformers", value.Line)
	}

	rules := TransformRules{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valueNode := value.Content[i], value.Content[i+1]

		var pattern string
		if err := keyNode.Decode(&pattern); err != nil {
			return fmt.Errorf("line %d: transform pattern must be a string", keyNode.Line)
		}

		rule, err := decodeYAMLRule(pattern, valueNode)
		if err != nil {
			return err
		}
		rules.set(rule)
	}

	*rs = rules
	return nil
}

func decodeYAMLRule(pattern string, node *yaml.Node) (TransformRule, error) {
	rule := TransformRule{Pattern: pattern}

	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if err := node.Decode(&rule.Transformer); err != nil {
			return rule, fmt.Errorf("line %d: transform[%q]: %w", node.Line, pattern, err)
		}
		return rule, nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 2 || resolveAlias(node.Content[0]).Kind != yaml.ScalarNode {
			break
		}
		if err := node.Content[0].Decode(&rule.Transformer); err != nil {
			return rule, fmt.Errorf("line %d: transform[%q]: %w", node.Line, pattern, err)
		}
		if len(node.Content) == 2 {
			var options map[string]interface{}
			if err := node.Content[1].Decode(&options); err != nil {
				return rule, fmt.Errorf("line %d: transform[%q]: transformer options must be a mapping", node.Line, pattern)
			}
			normalized, err := normalizeJSON(options)
			if err != nil {
				return rule, fmt.Errorf("line %d: transform[%q]: %w", node.Line, pattern, err)
			}
			rule.Options, _ = normalized.(map[string]interface{})
			if rule.Options == nil {
				rule.Options = map[string]interface{}{}
			}
		}
		return rule, nil
	}
	return rule, fmt.Errorf("line %d: transform[%q]: expected a transformer name or a [name, options] pair", node.Line, pattern)
}

// resolveAlias follows "*name" references to the anchored node.
func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// normalizeJSON round-trips v through encoding/json so YAML-decoded values
// take the same shapes as JSON-decoded ones (float64 numbers, string keys).
func normalizeJSON(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

func cloneOptions(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return cloneOptions(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
