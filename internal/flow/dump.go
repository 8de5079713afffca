package flow

import (
	"fmt"
	"strings"

	"github.com/roach88/opflow/internal/ir"
)

// Dump renders a graph as a canonical dump Value: one object per block
// with its statements, conditional edge, fallthrough and predecessors.
// Edges are recorded as ordinals.
func Dump(blocks []*BasicBlock) ir.Value {
	arr := make(ir.Array, len(blocks))
	for i, b := range blocks {
		obj := ir.NewObject(
			ir.O("ordinal", ir.Int(b.Ordinal)),
			ir.O("kind", ir.String(b.Kind.String())),
			ir.O("next", ordinal(b.Next)),
			ir.O("predecessors", ordinals(b.Predecessors())),
		)
		if len(b.Statements) > 0 {
			statements := make(ir.Array, len(b.Statements))
			for j, s := range b.Statements {
				statements[j] = ir.Dump(s)
			}
			obj["statements"] = statements
		}
		if c := b.Conditional; c != nil {
			obj["conditional"] = ir.NewObject(
				ir.O("condition", ir.Dump(c.Condition)),
				ir.O("jump_if_false", ir.Bool(c.JumpIfFalse)),
				ir.O("destination", ordinal(c.Destination)),
			)
		}
		arr[i] = obj
	}
	return arr
}

// GraphHash returns the content hash of the canonical dump of blocks.
func GraphHash(blocks []*BasicBlock) (string, error) {
	return ir.HashValue(ir.DomainGraph, Dump(blocks))
}

func ordinal(b *BasicBlock) ir.Value {
	if b == nil {
		return nil
	}
	return ir.Int(b.Ordinal)
}

func ordinals(blocks []*BasicBlock) ir.Value {
	arr := make(ir.Array, len(blocks))
	for i, b := range blocks {
		arr[i] = ir.Int(b.Ordinal)
	}
	return arr
}

// Format renders a graph as indented text, one block per header line
// followed by its statements and edges. Used by the CLI and golden files.
func Format(blocks []*BasicBlock) string {
	var sb strings.Builder
	for _, b := range blocks {
		fmt.Fprintf(&sb, "%s %s", b, b.Kind)
		if preds := b.Predecessors(); len(preds) > 0 {
			names := make([]string, len(preds))
			for i, p := range preds {
				names[i] = p.String()
			}
			fmt.Fprintf(&sb, " preds=[%s]", strings.Join(names, ","))
		}
		sb.WriteByte('\n')
		for _, s := range b.Statements {
			writeIndented(&sb, ir.Format(s), "    ")
		}
		if c := b.Conditional; c != nil {
			when := "true"
			if c.JumpIfFalse {
				when = "false"
			}
			fmt.Fprintf(&sb, "  if %s goto %s\n", when, c.Destination)
			writeIndented(&sb, ir.Format(c.Condition), "    ")
		}
		if b.Next != nil {
			fmt.Fprintf(&sb, "  next %s\n", b.Next)
		}
	}
	return sb.String()
}

func writeIndented(sb *strings.Builder, text, indent string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(indent)
		sb.WriteString(line)
	}
}
