package ast

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *ListNode:
		return n.Elements
	case *VarAssignNode:
		return []Node{n.Value}
	case *BinOpNode:
		return []Node{n.Left, n.Right}
	case *UnaryOpNode:
		return []Node{n.Operand}
	case *IfNode:
		var out []Node
		for _, c := range n.Cases {
			out = append(out, c.Condition, c.Body)
		}
		if n.Else != nil {
			out = append(out, n.Else.Body)
		}
		return out
	case *ForNode:
		out := []Node{n.From, n.To}
		if n.Step != nil {
			out = append(out, n.Step)
		}
		return append(out, n.Body)
	case *WhileNode:
		return []Node{n.Condition, n.Body}
	case *FuncDefNode:
		return []Node{n.Body}
	case *CallNode:
		return append([]Node{n.Callee}, n.Args...)
	}
	return nil
}

// Inspect traverses the tree depth-first, calling f for each node. Children
// are skipped when f returns false. Nil nodes are not visited.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
