package shell

import (
	"sort"
	"strings"

	"learnscript/internal/commands"
	"learnscript/internal/packages"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// Completer offers tab completion for LSL input. It satisfies ishell's
// readline.AutoCompleter.
type Completer struct {
	verbs      []string
	layerTypes []string
	pkgNames   []string
}

// NewCompleter builds completions from the aliases, the dispatcher's
// commands, the layer types and the registry's package names.
func NewCompleter(d *commands.Dispatcher, registry *packages.Registry) *Completer {
	seen := map[string]bool{lsltypes.PackageDirective: true, string(lsltypes.CommandModel): true}
	for _, a := range parser.Aliases() {
		seen[a.Keyword] = true
	}
	for _, h := range d.Handlers() {
		seen[string(h.Name())] = true
	}
	verbs := make([]string, 0, len(seen))
	for v := range seen {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)

	layerTypes := make([]string, 0, len(lsltypes.LayerTypes()))
	for _, lt := range lsltypes.LayerTypes() {
		layerTypes = append(layerTypes, string(lt))
	}

	return &Completer{
		verbs:      verbs,
		layerTypes: layerTypes,
		pkgNames:   registry.Names(),
	}
}

// Do returns the suffixes that complete the word under the cursor and the
// length of that word.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	text := string(line[:pos])
	start := strings.LastIndexAny(text, " \t") + 1
	word := text[start:]

	var candidates []string
	first := strings.Fields(text[:start])
	switch {
	case len(first) == 0:
		candidates = c.verbs
	case len(first) == 1 && (first[0] == "add" || first[0] == string(lsltypes.CommandLayer)):
		candidates = c.layerTypes
	case len(first) == 1 && first[0] == lsltypes.PackageDirective:
		candidates = c.pkgNames
	}

	var suggestions [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, word) && cand != word {
			suggestions = append(suggestions, []rune(strings.TrimPrefix(cand, word)+" "))
		}
	}
	return suggestions, len([]rune(word))
}
