package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlGrammar mirrors the on-disk TOML grammar document:
//
//	start = "program"
//	rules = [
//	    "program -> otherFunctions mainFunction",
//	    "otherFunctions -> function otherFunctions | eps",
//	]
//
// Rules use the same notation as the embedded grammar, without the
// terminating ";". Start is optional; it defaults to the first rule's
// left-hand side.
type tomlGrammar struct {
	Start string   `toml:"start"`
	Rules []string `toml:"rules"`
}

// LoadTOMLFile reads a grammar from the TOML file at path. The loaded
// grammar passes the same validation as the embedded one; the non-terminal
// and token vocabularies are fixed, so a file can reorder or reshape rules
// but not invent symbols.
func LoadTOMLFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar file: %w", err)
	}
	return LoadTOML(data)
}

// LoadTOML parses a TOML grammar document from data.
func LoadTOML(data []byte) (*Grammar, error) {
	var doc tomlGrammar
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing grammar file: %w", err)
	}

	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("grammar file defines no rules")
	}

	g, err := Parse(strings.Join(doc.Rules, " ;\n") + " ;")
	if err != nil {
		return nil, err
	}

	if doc.Start != "" {
		start, ok := NonTerminalForName(doc.Start)
		if !ok {
			return nil, fmt.Errorf("grammar file start symbol %q is not a non-terminal", doc.Start)
		}
		g.start = start
	}

	return g, nil
}
