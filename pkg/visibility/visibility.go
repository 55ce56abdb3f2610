// Package visibility decides whether a field is currently applicable given
// the answers captured so far. Steps attach a rule string to each candidate
// field; an evaluator resolves the rule against the live answer snapshot on
// every call, because upstream answers may have changed between calls in the
// same request.
package visibility

import "github.com/goliatone/go-formflow/pkg/rules"

// Evaluator determines whether a field should be shown based on a rule
// string and the current answer document.
type Evaluator interface {
	Eval(fieldName, rule string, ctx Context) (bool, error)
}

// Context provides evaluator inputs. Answers is the read-only document under
// validation; Extras lets callers inject out-of-document context such as a
// programme identifier.
type Context struct {
	Answers rules.Document
	Extras  map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldName, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldName, rule string, ctx Context) (bool, error) {
	return fn(fieldName, rule, ctx)
}

// Always is an evaluator that shows every field; useful in tests.
func Always() Evaluator {
	return EvaluatorFunc(func(string, string, Context) (bool, error) { return true, nil })
}
