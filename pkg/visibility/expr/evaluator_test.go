package expr

import (
	"testing"

	"github.com/goliatone/go-formflow/pkg/rules"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

func evalRule(t *testing.T, rule string, answers rules.Document) bool {
	t.Helper()
	ok, err := New().Eval("field", rule, visibility.Context{Answers: answers})
	if err != nil {
		t.Fatalf("Eval(%q) returned error: %v", rule, err)
	}
	return ok
}

func TestEmptyRuleIsVisible(t *testing.T) {
	t.Parallel()

	if !evalRule(t, "", nil) {
		t.Fatal("empty rule should show the field")
	}
}

func TestEquality(t *testing.T) {
	t.Parallel()

	answers := rules.Document{"orgType": "charity"}
	if !evalRule(t, `orgType == "charity"`, answers) {
		t.Fatal("expected match")
	}
	if evalRule(t, `orgType == "school"`, answers) {
		t.Fatal("expected mismatch")
	}
	if !evalRule(t, `orgType != "school"`, answers) {
		t.Fatal("expected inequality match")
	}
}

func TestMissingAnswerIsFalsy(t *testing.T) {
	t.Parallel()

	if evalRule(t, `orgType == "charity"`, rules.Document{}) {
		t.Fatal("missing answer must not equal anything")
	}
	if !evalRule(t, `orgType != "charity"`, rules.Document{}) {
		t.Fatal("missing answer satisfies inequality")
	}
	if evalRule(t, "orgType", rules.Document{}) {
		t.Fatal("missing answer is not truthy")
	}
}

func TestSetMembership(t *testing.T) {
	t.Parallel()

	answers := rules.Document{"orgSubType": "cio"}
	if !evalRule(t, `orgSubType in ["cio", "scio"]`, answers) {
		t.Fatal("expected membership")
	}
	if evalRule(t, `orgSubType in ["trust"]`, answers) {
		t.Fatal("expected non-membership")
	}
	if evalRule(t, `missing in ["cio"]`, rules.Document{}) {
		t.Fatal("missing answer is never a member")
	}
}

func TestBooleanComposition(t *testing.T) {
	t.Parallel()

	answers := rules.Document{"orgType": "charity", "orgSubType": "cio"}
	rule := `orgType == "charity" && orgSubType in ["cio", "scio"]`
	if !evalRule(t, rule, answers) {
		t.Fatal("conjunction should hold")
	}
	if !evalRule(t, `orgType == "school" || orgSubType == "cio"`, answers) {
		t.Fatal("disjunction should hold")
	}
	if !evalRule(t, `!(orgType == "school")`, answers) {
		t.Fatal("negated group should hold")
	}
}

func TestDotPathTraversal(t *testing.T) {
	t.Parallel()

	answers := rules.Document{
		"addressHistory": map[string]any{"currentAddressMeetsMinimum": "no"},
	}
	if !evalRule(t, `addressHistory.currentAddressMeetsMinimum == "no"`, answers) {
		t.Fatal("nested lookup should match")
	}
}

func TestExtrasLookup(t *testing.T) {
	t.Parallel()

	ctx := visibility.Context{Extras: map[string]any{"programme": "community-fund"}}
	ok, err := New().Eval("field", `extras.programme == "community-fund"`, ctx)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatal("extras lookup should match")
	}
}

func TestNumericComparison(t *testing.T) {
	t.Parallel()

	answers := rules.Document{"beneficiaries": "250"}
	if !evalRule(t, `beneficiaries == 250`, answers) {
		t.Fatal("numeric coercion should match string input")
	}
}

func TestMalformedRuleFails(t *testing.T) {
	t.Parallel()

	if _, err := New().Eval("field", `orgType = "charity"`, visibility.Context{}); err == nil {
		t.Fatal("single '=' must be rejected")
	}
	if _, err := New().Eval("field", `orgType in "charity"`, visibility.Context{}); err == nil {
		t.Fatal("'in' without a set must be rejected")
	}
}
