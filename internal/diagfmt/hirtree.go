package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"rock/internal/hir"
	"rock/internal/types"
)

// HIRTree pretty-prints root as an indented tree, one TopLevel per child of
// the root label, resolved types annotated inline when in is non-nil.
// Grounded on the teacher's diagfmt treeNode/renderTree pair (ast_tree.go),
// simplified to plain indentation: HIR bodies never need the teacher's
// centered box-drawing layout, since rockc hir is read top-to-bottom rather
// than as a diagram.
func HIRTree(w io.Writer, root *hir.Root, in *types.Interner) {
	names := make([]string, 0, len(root.Structs))
	for name := range root.Structs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeStruct(w, root.Structs[name])
	}

	traitNames := make([]string, 0, len(root.Traits))
	for name := range root.Traits {
		traitNames = append(traitNames, name)
	}
	sort.Strings(traitNames)
	for _, name := range traitNames {
		t := root.Traits[name]
		fmt.Fprintf(w, "Trait %s: %s\n", t.Name, strings.Join(t.Methods, ", "))
	}

	for _, tl := range root.TopLevels {
		switch tl.Kind {
		case hir.TopExtern:
			writePrototype(w, tl.Extern, in)
		case hir.TopFunction:
			writeFunction(w, root, tl.Function, in)
		}
	}
}

func writeStruct(w io.Writer, s *hir.StructDecl) {
	fmt.Fprintf(w, "Struct %s\n", s.Name)
	for _, f := range s.Fields {
		fmt.Fprintf(w, "  %s\n", f.Name)
	}
}

func writePrototype(w io.Writer, p *hir.Prototype, in *types.Interner) {
	fmt.Fprintf(w, "Extern %s%s\n", p.Name, sigSuffix(in, p.Signature))
}

func writeFunction(w io.Writer, root *hir.Root, fn *hir.FunctionDecl, in *types.Interner) {
	fmt.Fprintf(w, "Function %s%s\n", fn.Name, sigSuffix(in, fn.Signature))
	for _, arg := range fn.Arguments {
		fmt.Fprintf(w, "  Param %s%s\n", arg.Name, nodeTypeSuffix(root, in, arg.NodeID))
	}
	fb := root.Bodies[fn.BodyID]
	if fb == nil || fb.Body == nil {
		fmt.Fprintln(w, "  Body: <none>")
		return
	}
	writeBody(w, root, in, fb.Body, "  ")
}

func sigSuffix(in *types.Interner, sig types.TypeID) string {
	if in == nil || sig == types.NoTypeID {
		return ""
	}
	return " : " + types.Label(in, sig)
}

func nodeTypeSuffix(root *hir.Root, in *types.Interner, id hir.NodeID) string {
	if in == nil {
		return ""
	}
	t, ok := root.NodeTypes[id]
	if !ok {
		return ""
	}
	return " : " + types.Label(in, t)
}

func writeBody(w io.Writer, root *hir.Root, in *types.Interner, body *hir.Body, indent string) {
	for _, s := range body.Stmts {
		writeStmt(w, root, in, s, indent)
	}
}

func writeStmt(w io.Writer, root *hir.Root, in *types.Interner, s *hir.Stmt, indent string) {
	switch s.Kind {
	case hir.StmtExpression:
		writeExpr(w, root, in, s.Expr, indent)
	case hir.StmtAssign:
		a := s.Assign
		kw := "Assign"
		if a.IsLet {
			kw = "Let"
		}
		fmt.Fprintf(w, "%s%s %s%s\n", indent, kw, a.Name, nodeTypeSuffix(root, in, a.NameNodeID))
		writeExpr(w, root, in, a.Value, indent+"  ")
	case hir.StmtIfChain:
		for i, arm := range s.IfChain.Arms {
			label := "If"
			if i > 0 {
				label = "ElseIf"
			}
			fmt.Fprintf(w, "%s%s\n", indent, label)
			writeExpr(w, root, in, arm.Cond, indent+"  ")
			writeBody(w, root, in, arm.Body, indent+"  ")
		}
		if s.IfChain.Else != nil {
			fmt.Fprintf(w, "%sElse\n", indent)
			writeBody(w, root, in, s.IfChain.Else, indent+"  ")
		}
	case hir.StmtFor:
		f := s.For
		fmt.Fprintf(w, "%sFor %s%s\n", indent, f.Binding, nodeTypeSuffix(root, in, f.BindingNodeID))
		writeExpr(w, root, in, f.Iter, indent+"  ")
		writeBody(w, root, in, f.Body, indent+"  ")
	}
}

func writeExpr(w io.Writer, root *hir.Root, in *types.Interner, e *hir.Expr, indent string) {
	if e == nil {
		return
	}
	suffix := nodeTypeSuffix(root, in, e.NodeID)
	switch e.Kind {
	case hir.ExprLit:
		fmt.Fprintf(w, "%sLit %s%s\n", indent, formatLit(e.Lit), suffix)
	case hir.ExprIdentifier:
		fmt.Fprintf(w, "%sIdentifier %s%s\n", indent, strings.Join(e.Path, "."), suffix)
	case hir.ExprCall:
		if op, ok := root.NativeOps[e.NodeID]; ok {
			fmt.Fprintf(w, "%sNativeOp %s%s\n", indent, op, suffix)
		} else {
			fmt.Fprintf(w, "%sCall%s\n", indent, suffix)
		}
		writeExpr(w, root, in, e.Callee, indent+"  ")
		for _, a := range e.Args {
			writeExpr(w, root, in, a, indent+"  ")
		}
	case hir.ExprStructCtor:
		fmt.Fprintf(w, "%sStructCtor %s%s\n", indent, e.StructName, suffix)
		for _, f := range e.Fields {
			fmt.Fprintf(w, "%s  %s:\n", indent, f.Name)
			writeExpr(w, root, in, f.Value, indent+"    ")
		}
	case hir.ExprIndice:
		fmt.Fprintf(w, "%sIndice%s\n", indent, suffix)
		writeExpr(w, root, in, e.Base, indent+"  ")
		writeExpr(w, root, in, e.Index, indent+"  ")
	case hir.ExprDot:
		fmt.Fprintf(w, "%sDot .%s%s\n", indent, e.FieldName, suffix)
		writeExpr(w, root, in, e.Base, indent+"  ")
	case hir.ExprReturn:
		fmt.Fprintf(w, "%sReturn%s\n", indent, suffix)
		writeExpr(w, root, in, e.Inner, indent+"  ")
	default:
		fmt.Fprintf(w, "%sInvalid\n", indent)
	}
}

func formatLit(l *hir.Literal) string {
	if l == nil {
		return "<nil>"
	}
	switch l.Kind {
	case hir.LitNumber:
		return fmt.Sprintf("%d", l.Number)
	case hir.LitFloat:
		return fmt.Sprintf("%g", l.Float)
	case hir.LitBool:
		return fmt.Sprintf("%v", l.Bool)
	case hir.LitString:
		return fmt.Sprintf("%q", l.String)
	case hir.LitChar:
		return fmt.Sprintf("%q", l.Char)
	case hir.LitArray:
		return fmt.Sprintf("[%d elems]", len(l.Array))
	default:
		return "<unknown>"
	}
}
