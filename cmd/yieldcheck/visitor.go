package main

import (
	"go/ast"
	"log"
	"reflect"
)

// AstVisitor marks types whose Visit<NodeType> methods are dispatched to by Visit.
type AstVisitor interface {
	astVisitor()
}

// Visit calls the Visit<NodeType> method of v matching node, if there is one.
func Visit(v AstVisitor, node ast.Node) {
	nodeType := reflect.TypeOf(node)
	visitorValue := reflect.ValueOf(v)
	methodValue := visitorValue.MethodByName("Visit" + nodeType.Elem().Name())
	if !methodValue.IsValid() {
		return
	}

	argType := methodValue.Type().In(0)
	if argType != nodeType {
		log.Fatalf("Function should accept %s but accepts %s instead.", argType, nodeType)
	}

	nodeValue := reflect.ValueOf(node)
	methodValue.Call([]reflect.Value{nodeValue})
}

// Walk visits every node under root, skipping nested function literals:
// those are frame bodies of their own, or plain closures.
func Walk(v AstVisitor, root ast.Node) {
	ast.Inspect(root, func(node ast.Node) bool {
		if node == nil {
			return false
		}
		if _, isLit := node.(*ast.FuncLit); isLit && node != root {
			return false
		}
		Visit(v, node)
		return true
	})
}
