package testmeta

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidDecoration marks a malformed test decoration.
var ErrInvalidDecoration = errors.New("invalid test decoration")

var decorationRegex = regexp.MustCompile(`(?i)^\[\s*(?:Microsoft\.DscResourceKit\.)?(IntegrationTest|UnitTest)\s*(?:\((.*)\))?\s*\]`)

// DecorationError locates a malformed decoration.
type DecorationError struct {
	Source string
	Line   int
	Err    error
}

func (e *DecorationError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *DecorationError) Unwrap() error {
	return e.Err
}

// Parse returns every decoration found in a test script. Decorations inside
// "#" line comments and "<# ... #>" block comments are ignored.
func Parse(source string, content []byte) ([]Descriptor, error) {
	var descriptors []Descriptor
	inBlockComment := false

	for i, raw := range strings.Split(string(content), "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		if inBlockComment {
			if strings.Contains(line, "#>") {
				inBlockComment = false
			}
			continue
		}
		if strings.HasPrefix(line, "<#") {
			inBlockComment = !strings.Contains(line[2:], "#>")
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		matches := decorationRegex.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		desc, err := parseDecoration(matches[1], matches[2])
		if err != nil {
			return nil, &DecorationError{Source: source, Line: lineNum, Err: err}
		}
		desc.Source = source
		desc.Line = lineNum
		descriptors = append(descriptors, desc)
	}
	return descriptors, nil
}

func parseDecoration(name, args string) (Descriptor, error) {
	desc := Descriptor{Kind: KindUnit}
	if strings.EqualFold(name, "IntegrationTest") {
		desc.Kind = KindIntegration
	}

	pairs, err := splitArguments(args)
	if err != nil {
		return Descriptor{}, err
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return Descriptor{}, fmt.Errorf("%w: expected Name = Value, got %q", ErrInvalidDecoration, pair)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "ordernumber":
			order, err := strconv.Atoi(value)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: OrderNumber must be an integer, got %q", ErrInvalidDecoration, value)
			}
			desc.Order = &order
		case "containername":
			if desc.ContainerName, err = unquote(value); err != nil {
				return Descriptor{}, err
			}
		case "containerimage":
			if desc.ContainerImage, err = unquote(value); err != nil {
				return Descriptor{}, err
			}
		default:
			return Descriptor{}, fmt.Errorf("%w: unknown argument %q", ErrInvalidDecoration, key)
		}
	}

	if err := desc.Validate(); err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}

// splitArguments splits on commas outside single or double quotes.
func splitArguments(args string) ([]string, error) {
	var parts []string
	var current strings.Builder
	var quote rune

	for _, r := range args {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated quote", ErrInvalidDecoration)
	}

	if last := current.String(); strings.TrimSpace(last) != "" || len(parts) > 0 {
		parts = append(parts, last)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: empty argument", ErrInvalidDecoration)
		}
	}
	return parts, nil
}

// unquote strips matching single or double quotes from a string argument.
func unquote(value string) (string, error) {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			return value[1 : len(value)-1], nil
		}
	}
	return "", fmt.Errorf("%w: expected a quoted string, got %q", ErrInvalidDecoration, value)
}
