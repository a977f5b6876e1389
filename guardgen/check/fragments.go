package check

import "github.com/broady/assertype/guardgen/typescript"

// Fragments is an ordered list of boolean expressions that are implicitly
// AND-combined. An empty list means the value is unconstrained; callers
// that combine results must observe emptiness rather than substitute
// true.
type Fragments []typescript.Expr

// Conjoin folds f left to right with &&. It returns false when f is empty.
func (f Fragments) Conjoin() (typescript.Expr, bool) {
	return f.fold(func(l, r typescript.Expr) typescript.Expr { return typescript.And(l, r) })
}

// Disjoin folds f left to right with ||. It returns false when f is empty.
func (f Fragments) Disjoin() (typescript.Expr, bool) {
	return f.fold(func(l, r typescript.Expr) typescript.Expr { return typescript.Or(l, r) })
}

func (f Fragments) fold(op func(l, r typescript.Expr) typescript.Expr) (typescript.Expr, bool) {
	if len(f) == 0 {
		return nil, false
	}
	acc := f[0]
	for _, e := range f[1:] {
		acc = op(acc, e)
	}
	return acc, true
}

// Strings prints each fragment.
func (f Fragments) Strings() []string {
	out := make([]string, len(f))
	for i, e := range f {
		out[i] = typescript.Print(e)
	}
	return out
}
