package hir

import (
	"rock/internal/ast"
	"rock/internal/source"
)

func (lw *lowerer) lowerBody(stmtIDs []ast.StmtID) *Body {
	body := &Body{Stmts: make([]*Stmt, 0, len(stmtIDs))}
	for _, id := range stmtIDs {
		if s := lw.lowerStmt(id); s != nil {
			body.Stmts = append(body.Stmts, s)
		}
	}
	return body
}

func (lw *lowerer) lowerStmt(id ast.StmtID) *Stmt {
	s := lw.b.Stmt(id)
	if s == nil {
		return nil
	}
	out := &Stmt{NodeID: lw.mint(s.Span), Span: s.Span}
	switch s.Kind {
	case ast.StmtExpr:
		out.Kind = StmtExpression
		out.Expr = lw.lowerExpr(s.Expr)
	case ast.StmtAssign:
		out.Kind = StmtAssign
		out.Assign = lw.lowerAssign(s.AssignS)
	case ast.StmtIf:
		out.Kind = StmtIfChain
		out.IfChain = lw.lowerIfChain(s.IfS)
	case ast.StmtFor:
		out.Kind = StmtFor
		out.For = lw.lowerFor(s.ForS)
	default:
		return nil
	}
	return out
}

func (lw *lowerer) lowerAssign(a ast.Assign) *Assign {
	out := &Assign{
		IsLet:      a.IsLet,
		Name:       a.Name,
		NameNodeID: lw.mint(a.Span),
		Value:      lw.lowerExpr(a.Value),
	}
	switch a.TargetKind {
	case ast.AssignIdentifier:
		out.TargetKind = AssignIdentifier
	case ast.AssignIndice:
		out.TargetKind = AssignIndice
		out.Target = lw.lowerExpr(a.Target)
	case ast.AssignDot:
		out.TargetKind = AssignDot
		out.Target = lw.lowerExpr(a.Target)
	}
	return out
}

func (lw *lowerer) lowerIfChain(ic ast.IfChain) *IfChain {
	out := &IfChain{}
	for _, arm := range ic.Arms {
		out.Arms = append(out.Arms, IfArm{
			Cond: lw.lowerExpr(arm.Cond),
			Body: lw.lowerBody(arm.Body),
		})
	}
	if ic.Else != nil {
		out.Else = lw.lowerBody(ic.Else)
	}
	return out
}

func (lw *lowerer) lowerFor(f ast.For) *For {
	return &For{
		Binding:       f.Binding,
		BindingNodeID: lw.mint(f.Span),
		Iter:          lw.lowerExpr(f.Iter),
		Body:          lw.lowerBody(f.Body),
	}
}

func (lw *lowerer) lowerExpr(id ast.ExprID) *Expr {
	e := lw.b.Expr(id)
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ast.ExprIdentifier:
		return &Expr{NodeID: lw.mint(e.Span), Kind: ExprIdentifier, Span: e.Span, Path: append([]string{}, e.Path.Segments...)}
	case ast.ExprLiteral:
		return &Expr{NodeID: lw.mint(e.Span), Kind: ExprLit, Span: e.Span, Lit: lw.lowerLiteral(e.Lit)}
	case ast.ExprBinopChain:
		return lw.desugarInfix(e)
	case ast.ExprCall:
		args := make([]*Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = lw.lowerExpr(a)
		}
		return &Expr{NodeID: lw.mint(e.Span), Kind: ExprCall, Span: e.Span, Callee: lw.lowerExpr(e.Callee), Args: args}
	case ast.ExprIndice:
		return &Expr{NodeID: lw.mint(e.Span), Kind: ExprIndice, Span: e.Span, Base: lw.lowerExpr(e.Base), Index: lw.lowerExpr(e.Index)}
	case ast.ExprDot:
		return &Expr{NodeID: lw.mint(e.Span), Kind: ExprDot, Span: e.Span, Base: lw.lowerExpr(e.Base), FieldName: e.Field}
	case ast.ExprStructCtor:
		fields := make([]StructCtorField, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = StructCtorField{Name: f.Name, Value: lw.lowerExpr(f.Value)}
		}
		return &Expr{NodeID: lw.mint(e.Span), Kind: ExprStructCtor, Span: e.Span, StructName: e.TypeName, Fields: fields}
	case ast.ExprGroup:
		return lw.lowerExpr(e.Base)
	default:
		return nil
	}
}

func (lw *lowerer) lowerLiteral(l ast.Literal) *Literal {
	out := &Literal{Number: l.Number, Float: l.Float, Bool: l.Bool, String: l.String, Char: l.Char}
	switch l.Kind {
	case ast.LitNumber:
		out.Kind = LitNumber
	case ast.LitFloat:
		out.Kind = LitFloat
	case ast.LitBool:
		out.Kind = LitBool
	case ast.LitString:
		out.Kind = LitString
	case ast.LitChar:
		out.Kind = LitChar
	case ast.LitArray:
		out.Kind = LitArray
		out.Array = make([]*Expr, len(l.Array))
		for i, el := range l.Array {
			out.Array[i] = lw.lowerExpr(el)
		}
	}
	return out
}

// desugarInfix implements spec.md §4.1's shunting-yard algorithm: walk the
// flat chain left to right, popping operators of greater-or-equal
// precedence before pushing (left-associative on ties, per law B4), then
// drain the remaining stack, folding into a binary FunctionCall tree whose
// callee is the bare operator name. Which NativeOperatorKind this resolves
// to depends on operand type and is decided later by internal/infer (see
// hir.BuiltinOperators).
func (lw *lowerer) desugarInfix(e *ast.Expr) *Expr {
	type opFrame struct {
		name string
		span source.Span
		prec uint8
	}
	var operands []*Expr
	var ops []opFrame

	apply := func(f opFrame) {
		if len(operands) < 2 {
			return
		}
		rhs := operands[len(operands)-1]
		lhs := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		callee := &Expr{NodeID: lw.mint(f.span), Kind: ExprIdentifier, Span: f.span, Path: []string{f.name}}
		operands = append(operands, &Expr{
			NodeID: lw.mint(f.span),
			Kind:   ExprCall,
			Span:   lhs.Span.Cover(rhs.Span),
			Callee: callee,
			Args:   []*Expr{lhs, rhs},
		})
	}

	operands = append(operands, lw.lowerExpr(e.First))
	for _, tail := range e.Tail {
		prec := lw.precedence[tail.Op]
		for len(ops) > 0 && ops[len(ops)-1].prec >= prec {
			top := ops[len(ops)-1]
			ops = ops[:len(ops)-1]
			apply(top)
		}
		ops = append(ops, opFrame{name: tail.Op, span: tail.OpSpan, prec: prec})
		operands = append(operands, lw.lowerExpr(tail.Rhs))
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		apply(top)
	}
	if len(operands) == 0 {
		return nil
	}
	return operands[0]
}

