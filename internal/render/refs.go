package render

import (
	"text/template"
	"text/template/parse"
)

// references returns the top-level answer names a parsed template reads,
// in first-use order. Field accesses inside range/with bodies are ignored
// because the dot is rebound there; $.name is still counted.
func references(t *template.Template) []string {
	var c refCollector
	for _, tt := range t.Templates() {
		if tt.Tree != nil && tt.Tree.Root != nil {
			c.walk(tt.Tree.Root, true)
		}
	}
	return c.names
}

type refCollector struct {
	names []string
	seen  map[string]bool
}

func (c *refCollector) add(name string) {
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if !c.seen[name] {
		c.seen[name] = true
		c.names = append(c.names, name)
	}
}

func (c *refCollector) walk(node parse.Node, topDot bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			c.walk(child, topDot)
		}
	case *parse.ActionNode:
		c.walk(n.Pipe, topDot)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			c.walk(cmd, topDot)
		}
	case *parse.CommandNode:
		if name, ok := indexKey(n, topDot); ok {
			c.add(name)
		}
		for _, arg := range n.Args {
			c.walk(arg, topDot)
		}
	case *parse.ChainNode:
		c.walk(n.Node, topDot)
	case *parse.FieldNode:
		if topDot && len(n.Ident) > 0 {
			c.add(n.Ident[0])
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			c.add(n.Ident[1])
		}
	case *parse.IfNode:
		c.walk(n.Pipe, topDot)
		c.walk(n.List, topDot)
		c.walk(n.ElseList, topDot)
	case *parse.RangeNode:
		c.walk(n.Pipe, topDot)
		c.walk(n.List, false)
		c.walk(n.ElseList, topDot)
	case *parse.WithNode:
		c.walk(n.Pipe, topDot)
		c.walk(n.List, false)
		c.walk(n.ElseList, topDot)
	case *parse.TemplateNode:
		c.walk(n.Pipe, topDot)
	}
}

// indexKey recognizes {{index . "name"}} and {{index $ "name"}}, which read
// an answer without a field node and bypass missingkey=error.
func indexKey(n *parse.CommandNode, topDot bool) (string, bool) {
	if len(n.Args) < 3 {
		return "", false
	}
	fn, ok := n.Args[0].(*parse.IdentifierNode)
	if !ok || fn.Ident != "index" {
		return "", false
	}
	switch root := n.Args[1].(type) {
	case *parse.DotNode:
		if !topDot {
			return "", false
		}
	case *parse.VariableNode:
		if len(root.Ident) != 1 || root.Ident[0] != "$" {
			return "", false
		}
	default:
		return "", false
	}
	key, ok := n.Args[2].(*parse.StringNode)
	if !ok {
		return "", false
	}
	return key.Text, true
}
