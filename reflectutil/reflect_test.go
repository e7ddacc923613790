package reflectutil

import (
	"errors"
	"reflect"
	"testing"
)

type person struct {
	Name string
}

func (p *person) Greet(prefix string) string {
	return prefix + p.Name
}

func (p *person) Fail() (string, error) {
	return "", errors.New("boom")
}

func TestFieldGetter(t *testing.T) {
	c := NewCache()
	g := c.FieldGetter(reflect.TypeOf(person{}), "Name")

	got, err := g.Get(&person{Name: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Alice" {
		t.Fatalf("got %v, want Alice", got)
	}
}

func TestFieldGetter_CachesByKey(t *testing.T) {
	c := NewCache()
	a := c.FieldGetter(reflect.TypeOf(person{}), "Name")
	b := c.FieldGetter(reflect.TypeOf(person{}), "Name")
	if a != b {
		t.Fatalf("expected the same cached getter instance for repeated lookups")
	}
}

func TestMethodCaller(t *testing.T) {
	c := NewCache()
	caller := c.MethodCaller(reflect.TypeOf(&person{}), "Greet")

	got, err := caller.Invoke(&person{Name: "Bob"}, []any{"Hi, "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hi, Bob" {
		t.Fatalf("got %v, want %q", got, "Hi, Bob")
	}
}

func TestMethodCaller_PropagatesError(t *testing.T) {
	c := NewCache()
	caller := c.MethodCaller(reflect.TypeOf(&person{}), "Fail")

	_, err := caller.Invoke(&person{}, nil)
	if err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestFieldGetter_NilInstance(t *testing.T) {
	c := NewCache()
	g := c.FieldGetter(reflect.TypeOf(person{}), "Name")
	if _, err := g.Get(nil); err == nil {
		t.Fatalf("expected error reading field of nil instance")
	}
}

func newPerson(name string) *person {
	return &person{Name: name}
}

func TestMethodCaller_StaticFuncOnNilInstance(t *testing.T) {
	c := NewCache()
	caller := c.MethodCaller(reflect.TypeOf((*person)(nil)), "newPerson", newPerson)

	got, err := caller.Invoke(nil, []any{"Carol"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := got.(*person)
	if !ok || p.Name != "Carol" {
		t.Fatalf("got %v, want *person{Name: Carol}", got)
	}
}

func TestMethodCaller_WithoutFuncStillErrorsOnNilInstance(t *testing.T) {
	c := NewCache()
	caller := c.MethodCaller(reflect.TypeOf(&person{}), "Greet")
	if _, err := caller.Invoke(nil, []any{"Hi, "}); err == nil {
		t.Fatalf("expected error calling an instance method with no instance and no static func")
	}
}
