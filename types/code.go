package types

import "strconv"

var (
	_ Value = JavaScript("")
	_ Value = CodeWithScope{}
	_ Value = Symbol("")
	_ Value = DBPointer{}
)

// JavaScript is a code string without scope.
type JavaScript string

func (v JavaScript) Type() Type { return TypeJavaScript }

func (v JavaScript) String() string {
	return "JavaScript(" + strconv.Quote(string(v)) + ")"
}

// CodeWithScope is a code string bundled with a document of variable
// bindings.
type CodeWithScope struct {
	Code  string
	Scope *Document
}

// NewCodeWithScope pairs code with its scope. A nil scope is stored as an
// empty document so the value always encodes.
func NewCodeWithScope(code string, scope *Document) CodeWithScope {
	if scope == nil {
		scope = NewDocument()
	}
	return CodeWithScope{Code: code, Scope: scope}
}

func (v CodeWithScope) Type() Type { return TypeCodeWithScope }

func (v CodeWithScope) String() string {
	return "JavaScript(" + strconv.Quote(v.Code) + ", scope: " + v.Scope.String() + ")"
}

// Symbol is a legacy interned-string variant kept so that documents
// containing it round-trip losslessly. New documents should use String.
type Symbol string

func (v Symbol) Type() Type { return TypeSymbol }

func (v Symbol) String() string {
	return "Symbol(" + strconv.Quote(string(v)) + ")"
}

// DBPointer is a legacy reference to a namespaced document, kept so that
// documents containing it round-trip losslessly.
type DBPointer struct {
	Namespace string
	ID        ObjectID
}

func (v DBPointer) Type() Type { return TypeDBPointer }

func (v DBPointer) String() string {
	return "DBPointer(" + strconv.Quote(v.Namespace) + ", " + v.ID.String() + ")"
}
