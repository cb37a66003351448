package main

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"

	"github.com/tmr232/yieldfrom"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/packages"
)

// YieldfromPkgPath is the import path of the yieldfrom package.
var YieldfromPkgPath string

func init() {
	YieldfromPkgPath = reflect.TypeOf(new(yieldfrom.Marker)).Elem().PkgPath()
}

const misuseMessage = "delegation marker yielded from a frame without a driver; " +
	"use yieldfrom.NewDelegating, yieldfrom.NewDriver or yieldfrom.Wrap"

// Finding is a marker yielded from a frame that nothing delegates for.
type Finding struct {
	Pos     token.Position
	Func    string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Pos, f.Message)
}

// packageFacts are gathered from a whole package before any New call is judged.
type packageFacts struct {
	// wrappedFuncs are functions passed to Wrap, or called to produce a NewDriver argument.
	wrappedFuncs map[types.Object]bool
	// drivenVars are variables passed to NewDriver.
	drivenVars map[types.Object]bool
	decls      map[types.Object]*ast.FuncDecl
}

// Check reports every marker yielded from an undriven frame in pkgs.
// Packages loaded with tests appear more than once; findings are reported once.
func Check(pkgs []*packages.Package) []Finding {
	seen := make(map[string]bool)
	var findings []Finding
	for _, pkg := range pkgs {
		for _, finding := range checkPackage(pkg) {
			key := finding.Pos.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			findings = append(findings, finding)
		}
	}
	slices.SortFunc(findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Filename, b.Pos.Filename),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
		)
	})
	return findings
}

func checkPackage(pkg *packages.Package) []Finding {
	if pkg.TypesInfo == nil {
		return nil
	}
	in := inspector.New(pkg.Syntax)
	facts := gatherFacts(pkg, in)

	var findings []Finding
	in.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		call := node.(*ast.CallExpr)
		if !isPkgFunc(calleeObject(pkg.TypesInfo, call), "New") || len(call.Args) != 1 {
			return true
		}
		if facts.driven(pkg.TypesInfo, call, stack) {
			return true
		}
		body := facts.frameBody(pkg.TypesInfo, call.Args[0])
		if body == nil {
			return true
		}
		visitor := &yieldVisitor{pkg: pkg, function: enclosingFunc(stack), findings: &findings}
		Walk(visitor, body)
		return true
	})
	return findings
}

func gatherFacts(pkg *packages.Package, in *inspector.Inspector) *packageFacts {
	facts := &packageFacts{
		wrappedFuncs: make(map[types.Object]bool),
		drivenVars:   make(map[types.Object]bool),
		decls:        make(map[types.Object]*ast.FuncDecl),
	}
	info := pkg.TypesInfo
	in.Preorder([]ast.Node{(*ast.FuncDecl)(nil), (*ast.CallExpr)(nil)}, func(node ast.Node) {
		switch node := node.(type) {
		case *ast.FuncDecl:
			if obj := info.Defs[node.Name]; obj != nil {
				facts.decls[obj] = node
			}
		case *ast.CallExpr:
			callee := calleeObject(info, node)
			switch {
			case isPkgFunc(callee, "Wrap"):
				for _, arg := range node.Args {
					if fn, isFunc := referencedObject(info, arg).(*types.Func); isFunc {
						facts.wrappedFuncs[fn] = true
					}
				}
			case isPkgFunc(callee, "NewDriver"):
				for _, arg := range node.Args {
					switch arg := ast.Unparen(arg).(type) {
					case *ast.CallExpr:
						if fn, isFunc := calleeObject(info, arg).(*types.Func); isFunc {
							facts.wrappedFuncs[fn] = true
						}
					default:
						if v, isVar := referencedObject(info, arg).(*types.Var); isVar {
							facts.drivenVars[v] = true
						}
					}
				}
			}
		}
	})
	return facts
}

// driven reports whether the New call at the top of stack ends up driven.
func (facts *packageFacts) driven(info *types.Info, call *ast.CallExpr, stack []ast.Node) bool {
	if len(stack) >= 2 {
		if v := assignedVar(info, call, stack[len(stack)-2]); v != nil && facts.drivenVars[v] {
			return true
		}
	}
	for i := len(stack) - 2; i >= 0; i-- {
		switch outer := stack[i].(type) {
		case *ast.CallExpr:
			callee := calleeObject(info, outer)
			if isPkgFunc(callee, "NewDriver") || isPkgFunc(callee, "Wrap") {
				return true
			}
		case *ast.FuncDecl:
			if facts.wrappedFuncs[info.Defs[outer.Name]] {
				return true
			}
		}
	}
	return false
}

// frameBody finds the body of the frame function passed to New.
func (facts *packageFacts) frameBody(info *types.Info, arg ast.Expr) ast.Node {
	if lit, isLit := ast.Unparen(arg).(*ast.FuncLit); isLit {
		return lit
	}
	if decl := facts.decls[referencedObject(info, arg)]; decl != nil && decl.Body != nil {
		return decl.Body
	}
	return nil
}

// assignedVar returns the variable call is assigned to by parent, if any.
func assignedVar(info *types.Info, call *ast.CallExpr, parent ast.Node) types.Object {
	var lhs []ast.Expr
	var rhs []ast.Expr
	switch parent := parent.(type) {
	case *ast.AssignStmt:
		lhs, rhs = parent.Lhs, parent.Rhs
	case *ast.ValueSpec:
		for _, name := range parent.Names {
			lhs = append(lhs, name)
		}
		rhs = parent.Values
	default:
		return nil
	}
	for i, value := range rhs {
		if value == call && i < len(lhs) {
			return referencedObject(info, lhs[i])
		}
	}
	return nil
}

func enclosingFunc(stack []ast.Node) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if decl, isDecl := stack[i].(*ast.FuncDecl); isDecl {
			return decl.Name.Name
		}
	}
	return ""
}

func referencedObject(info *types.Info, expr ast.Expr) types.Object {
	switch expr := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return info.ObjectOf(expr)
	case *ast.SelectorExpr:
		return info.ObjectOf(expr.Sel)
	case *ast.IndexExpr:
		return referencedObject(info, expr.X)
	case *ast.IndexListExpr:
		return referencedObject(info, expr.X)
	}
	return nil
}

func calleeObject(info *types.Info, call *ast.CallExpr) types.Object {
	return referencedObject(info, call.Fun)
}

// isPkgFunc checks obj is the package-level yieldfrom function name.
func isPkgFunc(obj types.Object, name string) bool {
	fn, isFunc := obj.(*types.Func)
	if !isFunc || fn.Pkg() == nil || fn.Pkg().Path() != YieldfromPkgPath || fn.Name() != name {
		return false
	}
	sig, _ := fn.Type().(*types.Signature)
	return sig != nil && sig.Recv() == nil
}

// isYielderMethod checks obj is the method name of yieldfrom.Yielder.
func isYielderMethod(obj types.Object, name string) bool {
	fn, isFunc := obj.(*types.Func)
	if !isFunc || fn.Pkg() == nil || fn.Pkg().Path() != YieldfromPkgPath || fn.Name() != name {
		return false
	}
	sig, _ := fn.Type().(*types.Signature)
	return sig != nil && sig.Recv() != nil && isNamed(sig.Recv().Type(), "Yielder")
}

func isMarker(t types.Type) bool {
	return isNamed(t, "Marker")
}

// isNamed checks t is yieldfrom.name or a pointer to it.
func isNamed(t types.Type, name string) bool {
	if ptr, isPtr := t.(*types.Pointer); isPtr {
		t = ptr.Elem()
	}
	named, isNamed := t.(*types.Named)
	if !isNamed || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == YieldfromPkgPath && named.Obj().Name() == name
}

// yieldVisitor reports yields of markers inside one frame body.
type yieldVisitor struct {
	pkg      *packages.Package
	function string
	findings *[]Finding
}

func (v *yieldVisitor) astVisitor() {}

func (v *yieldVisitor) VisitCallExpr(call *ast.CallExpr) {
	info := v.pkg.TypesInfo
	callee := calleeObject(info, call)
	switch {
	case isYielderMethod(callee, "YieldFrom"):
	case isYielderMethod(callee, "Yield") && len(call.Args) == 1 && isMarker(info.TypeOf(call.Args[0])):
	default:
		return
	}
	*v.findings = append(*v.findings, Finding{
		Pos:     v.pkg.Fset.Position(call.Pos()),
		Func:    v.function,
		Message: misuseMessage,
	})
}
