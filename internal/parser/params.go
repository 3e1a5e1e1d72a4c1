package parser

import (
	"regexp"

	"gopkg.in/yaml.v3"

	"learnscript/pkg/lsltypes"
)

// paramPattern matches a single `identifier:value` token.
var paramPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):(.+)$`)

// numberPattern is the JSON number grammar. YAML-only numerals such as
// `0x10`, `1_000`, `+5`, `.5` or `.nan` do not match.
var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// addParam records tok in params when it has the `key:value` shape.
func addParam(params lsltypes.Params, tok string) bool {
	key, value, ok := splitParam(tok)
	if !ok {
		return false
	}
	params[key] = ParseValue(value)
	return true
}

// ParseValue decodes a parameter value as a JSON literal: integer, float,
// boolean, null, double-quoted string, array or object. Anything else,
// including YAML-only forms, is returned unchanged as a string.
func ParseValue(text string) any {
	if !looksLikeLiteral(text) {
		return text
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return text
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || !isJSONNode(doc.Content[0]) {
		return text
	}

	var v any
	if err := doc.Content[0].Decode(&v); err != nil {
		return text
	}
	return v
}

// isJSONNode reports whether n and its children are written the way JSON
// writes them: quoted strings and keys, plain numbers, true, false, null and
// flow collections, with no anchors, aliases, tags or comments.
func isJSONNode(n *yaml.Node) bool {
	if n.Anchor != "" || n.HeadComment != "" || n.LineComment != "" || n.FootComment != "" {
		return false
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return isJSONScalar(n)

	case yaml.SequenceNode:
		if n.Style&yaml.FlowStyle == 0 || n.ShortTag() != "!!seq" {
			return false
		}
		for _, child := range n.Content {
			if !isJSONNode(child) {
				return false
			}
		}
		return true

	case yaml.MappingNode:
		if n.Style&yaml.FlowStyle == 0 || n.ShortTag() != "!!map" {
			return false
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode || key.Style != yaml.DoubleQuotedStyle || !isJSONNode(n.Content[i+1]) {
				return false
			}
		}
		return true
	}
	return false
}

func isJSONScalar(n *yaml.Node) bool {
	if n.Style == yaml.DoubleQuotedStyle {
		return n.ShortTag() == "!!str"
	}
	if n.Style != 0 {
		return false
	}

	switch n.ShortTag() {
	case "!!int", "!!float":
		return numberPattern.MatchString(n.Value)
	case "!!bool":
		return n.Value == "true" || n.Value == "false"
	case "!!null":
		return n.Value == "null"
	}
	return false
}

func splitParam(tok string) (key, value string, ok bool) {
	m := paramPattern.FindStringSubmatch(tok)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// looksLikeLiteral limits decoding to text that could start a JSON literal,
// so barewords such as `relu` or `yes` stay strings without a decode.
func looksLikeLiteral(text string) bool {
	switch text {
	case "true", "false", "null":
		return true
	case "", "-":
		return false
	}

	switch c := text[0]; {
	case c == '[', c == '{', c == '"':
		return true
	case c == '-', c >= '0' && c <= '9':
		return true
	}
	return false
}
