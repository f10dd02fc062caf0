package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// CompileGlob compiles a test match pattern with "/" as the separator.
// Unbalanced "{" groups and "[" classes are rejected; glob.Compile alone
// accepts an unterminated "{" as a literal.
func CompileGlob(pattern string) (glob.Glob, error) {
	if err := checkGlobBrackets(pattern); err != nil {
		return nil, err
	}
	return glob.Compile(pattern, '/')
}

func checkGlobBrackets(pattern string) error {
	depth := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '{':
			depth++
		case c == '}':
			if depth == 0 {
				return fmt.Errorf("unexpected '}' at offset %d", i)
			}
			depth--
		}
	}
	if inClass {
		return fmt.Errorf("unterminated character class")
	}
	if depth > 0 {
		return fmt.Errorf("unterminated '{' group")
	}
	return nil
}
