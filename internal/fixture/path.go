package fixture

import (
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"gopkg.in/yaml.v3"
)

// fieldPath addresses a value inside a fixture document. Elements are
// field names (string) or list indexes (int).
type fieldPath []any

func (p fieldPath) field(name string) fieldPath {
	out := make(fieldPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

func (p fieldPath) index(i int) fieldPath {
	out := make(fieldPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, i)
}

func (p fieldPath) String() string {
	var sb strings.Builder
	for _, el := range p {
		switch x := el.(type) {
		case string:
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(x)
		case int:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(x))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// locator fills in the source position of a path. A path that does not
// exist in the source (an omitted field) is positioned at its nearest
// existing ancestor.
type locator interface {
	locate(e *LoadError, p fieldPath)
}

type cueLocator struct {
	root cue.Value
}

func (l cueLocator) locate(e *LoadError, p fieldPath) {
	sels := make([]cue.Selector, 0, len(p))
	for _, el := range p {
		switch x := el.(type) {
		case string:
			sels = append(sels, cue.Str(x))
		case int:
			sels = append(sels, cue.Index(x))
		}
	}
	for {
		v := l.root.LookupPath(cue.MakePath(sels...))
		if v.Exists() {
			e.Pos = v.Pos()
			return
		}
		if len(sels) == 0 {
			return
		}
		sels = sels[:len(sels)-1]
	}
}

type yamlLocator struct {
	root *yaml.Node
}

func (l yamlLocator) locate(e *LoadError, p fieldPath) {
	node := l.root
	if node == nil {
		return
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	for _, el := range p {
		next := yamlChild(node, el)
		if next == nil {
			break
		}
		node = next
	}
	e.Line, e.Column = node.Line, node.Column
}

func yamlChild(node *yaml.Node, el any) *yaml.Node {
	switch x := el.(type) {
	case string:
		if node.Kind != yaml.MappingNode {
			return nil
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == x {
				return node.Content[i+1]
			}
		}
	case int:
		if node.Kind == yaml.SequenceNode && x < len(node.Content) {
			return node.Content[x]
		}
	}
	return nil
}
