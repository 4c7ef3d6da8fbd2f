package pipeline

import (
	"go/parser"
	"go/token"
	"strings"
)

// CheckGoSyntax runs a syntax-only parse of src as Go source. Bare
// snippets without a package clause are retried with one prepended, so
// function-level output still validates.
func CheckGoSyntax(src string) error {
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "generated.go", src, parser.AllErrors); err == nil {
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(src), "package ") {
		_, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.AllErrors)
		return err
	}
	_, err := parser.ParseFile(token.NewFileSet(), "generated.go", "package main\n\n"+src, parser.AllErrors)
	return err
}
