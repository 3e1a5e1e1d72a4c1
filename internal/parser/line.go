package parser

import (
	"fmt"
	"strings"
	"unicode"

	"learnscript/pkg/lsltypes"
)

// Line is a tokenized, normalized script line.
type Line struct {
	// Text is the normalized line the fields below were parsed from.
	Text string

	// Token is the leading token after normalization.
	Token string

	// Command is the canonical command Token names; Known is false when
	// Token matches no command.
	Command lsltypes.Command
	Known   bool

	// Names holds double-quoted tokens in order, with quotes removed.
	Names []string

	// Words holds bare tokens that are neither quoted nor parameters.
	Words []string

	// Params holds decoded `key:value` tokens.
	Params lsltypes.Params
}

// Name returns the first quoted name, or "" when the line has none.
func (l *Line) Name() string {
	if len(l.Names) == 0 {
		return ""
	}
	return l.Names[0]
}

// ParseLine tokenizes a normalized line. Tokens are separated by whitespace
// outside double quotes. An unterminated quote is a syntax error.
func ParseLine(normalized string) (*Line, error) {
	text := strings.TrimSpace(normalized)
	token, rest := splitLeading(text)

	tokens, err := tokenize(rest)
	if err != nil {
		return nil, err
	}

	line := &Line{
		Text:   text,
		Token:  token,
		Names:  []string{},
		Words:  []string{},
		Params: make(lsltypes.Params),
	}
	line.Command, line.Known = lsltypes.ParseCommand(token)

	for _, tok := range tokens {
		if addParam(line.Params, tok) {
			continue
		}
		if isQuoted(tok) {
			line.Names = append(line.Names, tok[1:len(tok)-1])
			continue
		}
		if strings.Contains(tok, `"`) {
			return nil, fmt.Errorf("%w: malformed token %s", lsltypes.ErrSyntax, tok)
		}
		line.Words = append(line.Words, tok)
	}

	return line, nil
}

// tokenize splits s on whitespace, keeping double-quoted runs together.
func tokenize(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case !inQuotes && unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("%w: unterminated quoted string", lsltypes.ErrSyntax)
	}
	flush()

	return tokens, nil
}

func isQuoted(tok string) bool {
	return len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' && strings.Count(tok, `"`) == 2
}
