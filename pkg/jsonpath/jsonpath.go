package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract extracts a value from a JSON string using a JSONPath expression
func Extract(json string, path string) (string, error) {
	// Handle empty JSON
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}

	// Handle empty path
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	// Convert JSONPath to gjson path format
	// JSONPath: $.users[0].name
	// gjson:    users.0.name
	gpath, err := toGjsonPath(path)
	if err != nil {
		return "", err
	}

	// Extract the value
	result := gjson.Get(json, gpath)
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	// Handle null values
	if result.Type == gjson.Null {
		return "null", nil
	}

	// Return the value as a string
	return result.String(), nil
}

// ExtractMultiple extracts multiple values from a JSON string using a map of JSONPath expressions
func ExtractMultiple(json string, paths map[string]string) (map[string]string, error) {
	// Handle empty JSON
	if json == "" {
		return nil, fmt.Errorf("empty JSON string")
	}

	// Handle empty paths
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	// Extract each value
	results := make(map[string]string)
	var errors []string

	for name, path := range paths {
		value, err := Extract(json, path)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	// Return error if any extractions failed
	if len(errors) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(errors, "; "))
	}

	return results, nil
}

// toGjsonPath converts a JSONPath expression to a gjson path. It parses
// dot members, [n] indexes and ['key'] / ["key"] members, then joins them
// with gjson escaping so keys like "^.+\.ts$" are matched literally.
func toGjsonPath(path string) (string, error) {
	rest := strings.TrimPrefix(path, "$")
	var segments []string

	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			if end == 0 {
				return "", fmt.Errorf("invalid JSONPath %q: empty member name", path)
			}
			segments = append(segments, rest[:end])
			rest = rest[end:]
		case '[':
			if len(rest) > 1 && (rest[1] == '\'' || rest[1] == '"') {
				quote := rest[1]
				end := strings.IndexByte(rest[2:], quote)
				if end < 0 || len(rest) < end+4 || rest[end+3] != ']' {
					return "", fmt.Errorf("invalid JSONPath %q: unterminated quoted member", path)
				}
				segments = append(segments, rest[2:end+2])
				rest = rest[end+4:]
				continue
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("invalid JSONPath %q: missing ]", path)
			}
			segments = append(segments, rest[1:end])
			rest = rest[end+1:]
		default:
			// a bare member at the start, e.g. "name" instead of "$.name"
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			segments = append(segments, rest[:end])
			rest = rest[end:]
		}
	}

	if len(segments) == 0 {
		return "@this", nil
	}

	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = escapeSegment(seg)
	}
	return strings.Join(escaped, "."), nil
}

func escapeSegment(seg string) string {
	var sb strings.Builder
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
