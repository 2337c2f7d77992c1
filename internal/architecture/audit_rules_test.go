package architecture_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var auditMutationPrefixes = []string{
	"Create",
	"Update",
	"Delete",
	"Save",
	"Set",
	"Add",
	"Remove",
	"Toggle",
	"Reorder",
	"Apply",
	"Move",
	"Mark",
	"Upload",
}

// Calls that check a capability before the row store is touched.
var gateCalls = map[string]bool{
	"authorize":           true,
	"guard":               true,
	"collection":          true,
	"Require":             true,
	"RequireUnrestricted": true,
}

// Calls that write an audit entry.
var auditCalls = map[string]bool{
	"LogAllowed": true,
	"LogDenied":  true,
	"LogError":   true,
	"record":     true,
	"commit":     true,
}

// Key format: "path/to/file.go:Receiver.Method".
var auditRuleExceptions = map[string]string{
	"internal/service/contact/contact.go:Service.Submit": "public intake path; anonymous visitors have no console identity",
}

func TestServiceMutations_AreGatedAndAudited(t *testing.T) {
	serviceRoot := filepath.Join(internalRootDir(), "service")
	files, err := collectGoFiles(serviceRoot)
	require.NoError(t, err)

	violations := make([]string, 0)
	checked := 0
	for _, file := range files {
		if isTestFile(file) {
			continue
		}
		fset := token.NewFileSet()
		parsed, err := parser.ParseFile(fset, file, nil, 0)
		require.NoErrorf(t, err, "parse %s", file)

		for _, decl := range parsed.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || fn.Body == nil || !fn.Name.IsExported() || !isMutatingMethod(fn.Name.Name) {
				continue
			}
			key := relToRepoRoot(file) + ":" + receiverTypeName(fn) + "." + fn.Name.Name
			if _, ok := auditRuleExceptions[key]; ok {
				continue
			}
			checked++

			calls := calledNames(fn.Body)
			if delegatesToMutation(fn) {
				continue
			}
			if !anyIn(calls, gateCalls) {
				violations = append(violations, key+": no capability check")
			}
			if !anyIn(calls, auditCalls) {
				violations = append(violations, key+": no audit entry")
			}
		}
	}

	require.Positive(t, checked)
	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("%s", strings.Join(violations, "\n"))
	}
}

func receiverTypeName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	switch expr := fn.Recv.List[0].Type.(type) {
	case *ast.StarExpr:
		if ident, ok := expr.X.(*ast.Ident); ok {
			return ident.Name
		}
	case *ast.Ident:
		return expr.Name
	}
	return ""
}

func isMutatingMethod(name string) bool {
	for _, prefix := range auditMutationPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// calledNames returns the bare or selector names of every call in body.
func calledNames(body *ast.BlockStmt) map[string]bool {
	out := make(map[string]bool)
	ast.Inspect(body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		switch fun := call.Fun.(type) {
		case *ast.Ident:
			out[fun.Name] = true
		case *ast.SelectorExpr:
			out[fun.Sel.Name] = true
		}
		return true
	})
	return out
}

// delegatesToMutation reports whether fn calls another exported mutating
// method on its own receiver, which carries the checks instead.
func delegatesToMutation(fn *ast.FuncDecl) bool {
	if len(fn.Recv.List) == 0 || len(fn.Recv.List[0].Names) == 0 {
		return false
	}
	recv := fn.Recv.List[0].Names[0].Name
	found := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && id.Name == recv &&
			sel.Sel.IsExported() && isMutatingMethod(sel.Sel.Name) && sel.Sel.Name != fn.Name.Name {
			found = true
		}
		return true
	})
	return found
}

func anyIn(calls, want map[string]bool) bool {
	for name := range calls {
		if want[name] {
			return true
		}
	}
	return false
}
