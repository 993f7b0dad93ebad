package ast

import (
	"errors"
	"reflect"
	"testing"
)

// tree builds (x + 2) * max(y, 3) by hand.
func tree() Node[float32] {
	return &Operation[float32]{
		Op: Mul,
		Left: &Operation[float32]{
			Op:    Add,
			Left:  &Variable[float32]{Name: "x"},
			Right: &Number[float32]{Value: 2},
		},
		Right: &Function2[float32]{
			Fn:    Max,
			Left:  &Variable[float32]{Name: "y"},
			Right: &Number[float32]{Value: 3},
		},
	}
}

func TestCloneEqual(t *testing.T) {
	original := tree()
	cloned := Clone(original)
	if !Equal(original, cloned) {
		t.Fatal("Clone is not structurally equal to the original")
	}
}

func TestCloneIndependence(t *testing.T) {
	original := tree()
	cloned := Clone(original)

	// Mutate every payload reachable in the original; the clone must not
	// observe any of it.
	op := original.(*Operation[float32])
	op.Op = Add
	op.Left.(*Operation[float32]).Right.(*Number[float32]).Value = 99
	op.Right.(*Function2[float32]).Left.(*Variable[float32]).Name = "z"

	if Equal(original, cloned) {
		t.Fatal("Clone still equal after mutating the original")
	}
	if !Equal(cloned, tree()) {
		t.Fatal("Clone changed when the original was mutated")
	}
}

func TestCloneBranch(t *testing.T) {
	b := &Branch[float32]{
		Cond: &Comparison[float32]{Op: Lt, Left: &Variable[float32]{Name: "a"}, Right: &Number[float32]{Value: 1}},
		Yes:  &Logical[float32]{Op: And, Left: &Number[float32]{Value: 1}, Right: &Number[float32]{Value: 0}},
		No:   &Function1[float32]{Fn: Sqrt, Arg: &Number[float32]{Value: 4}},
	}
	if !Equal[float32](b, Clone[float32](b)) {
		t.Fatal("Branch clone is not equal")
	}
	if Clone[float32](nil) != nil {
		t.Fatal("Clone of nil should be nil")
	}
}

func TestEqualMismatch(t *testing.T) {
	a := tree()
	tests := []Node[float32]{
		nil,
		&Number[float32]{Value: 2},
		&Operation[float32]{Op: Div, Left: &Number[float32]{Value: 1}, Right: &Number[float32]{Value: 2}},
	}
	for i, b := range tests {
		if Equal(a, b) {
			t.Errorf("Case %d: expected trees to differ", i)
		}
	}
}

// orderVisitor records the visit order of a post-order walk.
type orderVisitor struct {
	order []string
}

func (v *orderVisitor) Number(n *Number[float32]) error {
	v.order = append(v.order, "num")
	return nil
}
func (v *orderVisitor) Variable(n *Variable[float32]) error {
	v.order = append(v.order, n.Name)
	return nil
}
func (v *orderVisitor) Operation(n *Operation[float32]) error {
	v.order = append(v.order, n.Op.String())
	return nil
}
func (v *orderVisitor) Function1(n *Function1[float32]) error {
	v.order = append(v.order, n.Fn.String())
	return nil
}
func (v *orderVisitor) Function2(n *Function2[float32]) error {
	v.order = append(v.order, n.Fn.String())
	return nil
}
func (v *orderVisitor) Comparison(n *Comparison[float32]) error {
	v.order = append(v.order, n.Op.String())
	return nil
}
func (v *orderVisitor) Logical(n *Logical[float32]) error {
	v.order = append(v.order, n.Op.String())
	return nil
}
func (v *orderVisitor) Branch(n *Branch[float32]) error {
	v.order = append(v.order, "?:")
	return nil
}

func TestWalkPostOrder(t *testing.T) {
	v := &orderVisitor{}
	if err := Walk(tree(), v); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []string{"x", "num", "+", "y", "num", "max", "*"}
	if !reflect.DeepEqual(v.order, expected) {
		t.Errorf("Expected visit order %v, got %v", expected, v.order)
	}
}

func TestWalkMalformed(t *testing.T) {
	if err := Walk[float32](nil, &orderVisitor{}); !errors.Is(err, ErrMalformedTree) {
		t.Errorf("Expected ErrMalformedTree, got %v", err)
	}
	bad := &Operation[float32]{Op: Add, Left: &Number[float32]{Value: 1}} // nil Right
	if err := Walk[float32](bad, &orderVisitor{}); !errors.Is(err, ErrMalformedTree) {
		t.Errorf("Expected ErrMalformedTree for a nil child, got %v", err)
	}
}

func TestTransformDoesNotMutate(t *testing.T) {
	original := tree()
	doubled := Transform(original, func(n Node[float32]) Node[float32] {
		if num, ok := n.(*Number[float32]); ok {
			return &Number[float32]{Value: num.Value * 2}
		}
		return n
	})
	if !Equal(original, tree()) {
		t.Fatal("Transform mutated its input")
	}
	want := tree()
	want.(*Operation[float32]).Left.(*Operation[float32]).Right.(*Number[float32]).Value = 4
	want.(*Operation[float32]).Right.(*Function2[float32]).Right.(*Number[float32]).Value = 6
	if !Equal(doubled, want) {
		t.Fatal("Transform did not rewrite the literals")
	}
}

func TestSubstitute(t *testing.T) {
	substituted := Substitute(tree(), "x", 7)
	want := tree()
	want.(*Operation[float32]).Left.(*Operation[float32]).Left = &Number[float32]{Value: 7}
	if !Equal(substituted, want) {
		t.Fatal("Substitute did not replace the variable")
	}
	if got := Variables(substituted); len(got) != 1 || got[0] != "y" {
		t.Errorf("Expected remaining variables [y], got %v", got)
	}
}

func TestVariables(t *testing.T) {
	got := Variables(tree())
	expected := []string{"x", "y"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if got := Variables[float32](&Number[float32]{Value: 1}); len(got) != 0 {
		t.Errorf("Expected no variables, got %v", got)
	}
}
