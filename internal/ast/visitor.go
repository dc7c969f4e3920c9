package ast

// Visitor receives one callback per node kind. Traversal into children is
// left to the implementation.
type Visitor interface {
	VisitNumber(n *NumberNode)
	VisitString(n *StringNode)
	VisitList(n *ListNode)
	VisitVarAccess(n *VarAccessNode)
	VisitVarAssign(n *VarAssignNode)
	VisitBinOp(n *BinOpNode)
	VisitUnaryOp(n *UnaryOpNode)
	VisitIf(n *IfNode)
	VisitFor(n *ForNode)
	VisitWhile(n *WhileNode)
	VisitFuncDef(n *FuncDefNode)
	VisitCall(n *CallNode)
}
