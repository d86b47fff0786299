package filter

import (
	"testing"

	"github.com/unrealemotion/gridview/internal/models"
)

func condition(column, pattern string, caseSensitive bool) *models.FilterCondition {
	c := models.NewFilterCondition(column)
	c.Pattern = pattern
	c.CaseSensitive = caseSensitive
	return c
}

func group(op models.GroupOperator, children ...models.FilterNode) *models.FilterGroup {
	g := models.NewFilterGroup("")
	g.Operator = op
	g.Children = children
	return g
}

func TestCompile_EmptyPatternMatchesEverything(t *testing.T) {
	pred := Compile(group(models.OpAnd, condition("name", "", false)))

	rows := []models.Row{
		{"name": "alice"},
		{"name": nil},
		{"name": 42},
		{},
	}
	for _, row := range rows {
		if !pred(row) {
			t.Errorf("empty pattern should match row %v", row)
		}
	}
}

func TestCompile_CaseInsensitiveByDefault(t *testing.T) {
	pred := Compile(group(models.OpAnd, condition("name", "^A", false)))

	if !pred(models.Row{"name": "alice"}) {
		t.Error("expected match on 'alice'")
	}
	if !pred(models.Row{"name": "Alice"}) {
		t.Error("expected match on 'Alice'")
	}
	if pred(models.Row{"name": "bob"}) {
		t.Error("expected no match on 'bob'")
	}
}

func TestCompile_CaseSensitive(t *testing.T) {
	pred := Compile(group(models.OpAnd, condition("name", "^A", true)))

	if pred(models.Row{"name": "alice"}) {
		t.Error("case-sensitive ^A should not match 'alice'")
	}
	if !pred(models.Row{"name": "Alice"}) {
		t.Error("case-sensitive ^A should match 'Alice'")
	}
}

func TestCompile_InvalidPatternFailsClosed(t *testing.T) {
	pred := Compile(group(models.OpAnd, condition("name", "(unclosed", false)))

	if pred(models.Row{"name": "(unclosed"}) {
		t.Error("invalid pattern must evaluate false, not throw or match")
	}
}

func TestCompile_MissingColumnCoercesToEmpty(t *testing.T) {
	pred := Compile(group(models.OpAnd, condition("missing", "^$", false)))

	if !pred(models.Row{"name": "alice"}) {
		t.Error("absent column should match ^$ via empty-string coercion")
	}
}

func TestCompile_BooleanAndNumberCoercion(t *testing.T) {
	pred := Compile(group(models.OpAnd, condition("active", "^true$", false)))
	if !pred(models.Row{"active": true}) {
		t.Error("true should stringify to 'true'")
	}
	if pred(models.Row{"active": false}) {
		t.Error("false should stringify to 'false'")
	}

	pred = Compile(group(models.OpAnd, condition("count", "^42$", false)))
	if !pred(models.Row{"count": 42}) {
		t.Error("42 should stringify to '42'")
	}
}

func TestCompile_AndOrSemantics(t *testing.T) {
	matching := condition("name", "^a", false)   // true for row below
	nonMatching := condition("name", "^z", false) // false for row below
	row := models.Row{"name": "alice"}

	andPred := Compile(group(models.OpAnd, matching, nonMatching))
	if andPred(row) {
		t.Error("AND over [true, false] should be false")
	}

	orPred := Compile(group(models.OpOr, matching.Clone(), nonMatching.Clone()))
	if !orPred(row) {
		t.Error("OR over [true, false] should be true")
	}
}

func TestCompile_EmptyGroupIsTrue(t *testing.T) {
	row := models.Row{"name": "alice"}

	if !Compile(group(models.OpAnd))(row) {
		t.Error("empty AND group should be true")
	}
	if !Compile(group(models.OpOr))(row) {
		t.Error("empty OR group should be true")
	}
}

func TestCompile_NestedGroups(t *testing.T) {
	// name matches ^a AND (age matches 3 OR age matches 4)
	inner := group(models.OpOr,
		condition("age", "3", false),
		condition("age", "4", false),
	)
	pred := Compile(group(models.OpAnd, condition("name", "^a", false), inner))

	if !pred(models.Row{"name": "alice", "age": 30}) {
		t.Error("expected match: name ^a, age contains 3")
	}
	if pred(models.Row{"name": "alice", "age": 25}) {
		t.Error("expected no match: inner OR fails")
	}
	if pred(models.Row{"name": "bob", "age": 30}) {
		t.Error("expected no match: outer AND fails")
	}
}

func TestCompile_PureAcrossRepeatedCalls(t *testing.T) {
	pred := Compile(group(models.OpAnd, condition("name", "^a", false)))
	row := models.Row{"name": "alice"}

	for i := 0; i < 100; i++ {
		if !pred(row) {
			t.Fatalf("call %d: predicate result changed", i)
		}
	}
}
