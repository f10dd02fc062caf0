package config

import (
	"fmt"
	"regexp"
	"strings"
)

// TransformerResolver knows which transformers the test engine can load.
type TransformerResolver interface {
	// HasTransformer reports whether id names a known transformer.
	HasTransformer(id string) bool

	// ValidateOptions checks options against the transformer's option schema.
	ValidateOptions(id string, options map[string]interface{}) error
}

// validate checks every invariant on c and compiles its transform patterns.
func validate(c *Configuration, transformers TransformerResolver) error {
	errs := &InvalidConfigurationError{}

	validateExtensions(c.extensions, errs)
	validateTestMatch(c.testMatch, errs)
	c.compiled = validateTransform(c.transform, transformers, errs)

	return errs.errOrNil()
}

func validateExtensions(extensions []string, errs *InvalidConfigurationError) {
	if len(extensions) == 0 {
		errs.add("moduleFileExtensions", InvariantNonEmpty, "at least one file extension is required")
		return
	}

	seen := make(map[string]int, len(extensions))
	for i, ext := range extensions {
		field := fmt.Sprintf("moduleFileExtensions[%d]", i)

		switch {
		case ext == "":
			errs.add(field, InvariantValidExtension, "extension cannot be empty")
		case strings.HasPrefix(ext, "."):
			errs.add(field, InvariantValidExtension, "extension %q must not start with a dot", ext)
		}

		if first, ok := seen[ext]; ok {
			errs.add(field, InvariantUnique, "duplicate extension %q (first listed at index %d)", ext, first)
			continue
		}
		seen[ext] = i
	}
}

func validateTestMatch(patterns []string, errs *InvalidConfigurationError) {
	for i, pattern := range patterns {
		field := fmt.Sprintf("testMatch[%d]", i)
		if pattern == "" {
			errs.add(field, InvariantValidGlob, "pattern cannot be empty")
			continue
		}
		if _, err := CompileGlob(pattern); err != nil {
			errs.add(field, InvariantValidGlob, "invalid glob %q: %v", pattern, err)
		}
	}
}

func validateTransform(rules TransformRules, transformers TransformerResolver, errs *InvalidConfigurationError) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(rules))

	for _, rule := range rules {
		field := fmt.Sprintf("transform[%q]", rule.Pattern)

		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			errs.add(field, InvariantValidPattern, "invalid pattern: %v", err)
		}
		compiled = append(compiled, re)

		switch {
		case rule.Transformer == "":
			errs.add(field, InvariantResolvableTransformer, "transformer name is required")
		case transformers == nil:
			// any named transformer is accepted
		case !transformers.HasTransformer(rule.Transformer):
			errs.add(field, InvariantResolvableTransformer, "unknown transformer %q", rule.Transformer)
		default:
			if err := transformers.ValidateOptions(rule.Transformer, rule.Options); err != nil {
				errs.add(field, InvariantValidOptions, "invalid options for %s: %v", rule.Transformer, err)
			}
		}
	}

	return compiled
}
