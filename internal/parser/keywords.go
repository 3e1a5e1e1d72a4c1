// Package parser turns raw LSL lines into structured commands.
// It covers keyword normalization, quote-aware tokenization and the
// `key:value` parameter grammar.
package parser

import (
	"strings"
	"unicode"

	"learnscript/pkg/lsltypes"
)

// Alias maps a user-facing verb to its canonical command.
type Alias struct {
	Keyword string
	Command lsltypes.Command
}

// aliasTable is consulted in order; the first matching keyword wins.
var aliasTable = []Alias{
	{"new", lsltypes.CommandModel},
	{"add", lsltypes.CommandLayer},
	{"learn", lsltypes.CommandTrain},
	{"guess", lsltypes.CommandPredict},
	{"save", lsltypes.CommandSaveModel},
	{"load", lsltypes.CommandLoadModel},
	{"test", lsltypes.CommandEvaluateModel},
	{"show", lsltypes.CommandVisualizeModel},
	{"mix", lsltypes.CommandCreateEnsemble},
	{"copy", lsltypes.CommandTransferWeights},
	{"optimize", lsltypes.CommandConfigureOptimizer},
	{"tune", lsltypes.CommandHyperparameterTuning},
	{"explain", lsltypes.CommandModelExplanation},
	{"compress", lsltypes.CommandModelCompression},
	{"deploy", lsltypes.CommandModelDeployment},
	{"check", lsltypes.CommandModelValidation},
	{"merge", lsltypes.CommandModelMerge},
	{"split", lsltypes.CommandDatasetSplit},
	{"clean", lsltypes.CommandDataCleaning},
	{"augment", lsltypes.CommandDataAugmentation},
}

// Aliases returns a copy of the alias table in lookup order.
func Aliases() []Alias {
	out := make([]Alias, len(aliasTable))
	copy(out, aliasTable)
	return out
}

// Normalize replaces a leading alias with its canonical command name.
// Only the leading token is examined and replaced; the remainder of the line
// is returned byte-for-byte. Lines without a matching alias are unchanged.
func Normalize(line string) string {
	token, rest := splitLeading(line)
	for _, a := range aliasTable {
		if a.Keyword == token {
			return string(a.Command) + rest
		}
	}
	return line
}

// splitLeading splits line at the first whitespace. rest keeps its leading
// whitespace so that token+rest == line.
func splitLeading(line string) (token, rest string) {
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], line[idx:]
}
