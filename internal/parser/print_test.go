package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PrintTree_layout(t *testing.T) {
	assert := assert.New(t)

	p := newTestParser()
	root, ok, _ := parseString(p, "_main\n b2 <--- 42 ;\n return ;\nend")
	assert.True(ok)

	var out bytes.Buffer
	PrintTree(root, &out)
	lines := strings.Split(out.String(), "\n")

	// header exactly once, followed by a blank separator line
	assert.Contains(lines[0], "lexeme")
	assert.Contains(lines[0], "NodeSymbol")
	assert.Equal(1, strings.Count(out.String(), "parentNodeSymbol"))
	assert.Equal("", lines[1])

	// every data row is exactly seven fixed-width columns
	for i, line := range lines[2:] {
		if line == "" {
			continue
		}
		assert.Equal(7*printColWidth, len(line), "row %d: %q", i, line)
	}

	// in-order traversal: the leftmost leaf prints first; with no other
	// functions that is the ε-expansion of otherFunctions
	first := lines[2]
	assert.Equal("EPSILON", strings.TrimSpace(first[2*printColWidth:3*printColWidth]))
	assert.Equal("YES", strings.TrimSpace(first[5*printColWidth:6*printColWidth]))

	// one row per tree node
	var countNodes func(n *Node) int
	countNodes = func(n *Node) int {
		total := 1
		for _, c := range n.Children {
			total += countNodes(c)
		}
		return total
	}
	dataRows := 0
	for _, line := range lines[2:] {
		if line != "" {
			dataRows++
		}
	}
	assert.Equal(countNodes(root), dataRows)
}

func Test_PrintTree_columns(t *testing.T) {
	assert := assert.New(t)

	p := newTestParser()
	root, ok, _ := parseString(p, "_main\n b2 <--- 42 ;\n return ;\nend")
	assert.True(ok)

	var out bytes.Buffer
	PrintTree(root, &out)
	rendered := out.String()

	field := func(line string, col int) string {
		return strings.TrimSpace(line[col*printColWidth : (col+1)*printColWidth])
	}

	var numRow, rootRow, interiorRow string
	for _, line := range strings.Split(rendered, "\n") {
		if len(line) != 7*printColWidth {
			continue
		}
		switch {
		case field(line, 0) == "42":
			numRow = line
		case field(line, 2) == "program":
			rootRow = line
		case field(line, 2) == "stmts":
			interiorRow = line
		}
	}

	// TK_NUM leaves carry their lexeme in the value column
	assert.NotEmpty(numRow)
	assert.Equal("2", field(numRow, 1))
	assert.Equal("TK_NUM", field(numRow, 2))
	assert.Equal("42", field(numRow, 3))
	assert.Equal("YES", field(numRow, 5))
	assert.Equal("TK_NUM", field(numRow, 6))

	// the root prints dashes for parent, leaf flag and symbol
	assert.NotEmpty(rootRow)
	assert.Equal("----", field(rootRow, 0))
	assert.Equal("-1", field(rootRow, 1))
	assert.Equal("----", field(rootRow, 4))
	assert.Equal("----", field(rootRow, 5))
	assert.Equal("----", field(rootRow, 6))

	// interior nodes have no lexeme or value and are not leaves
	assert.NotEmpty(interiorRow)
	assert.Equal("----", field(interiorRow, 0))
	assert.Equal("----", field(interiorRow, 3))
	assert.Equal("NO", field(interiorRow, 5))
	assert.Equal("mainFunction", field(interiorRow, 4))
}
