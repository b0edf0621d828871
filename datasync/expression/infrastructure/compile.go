package expression

import (
	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
)

type delegating interface {
	Delegate() e.Visitable
}

// Unwrap strips typed handles down to the tree node they carry.
func Unwrap(exp e.Visitable) e.Visitable {
	for {
		d, ok := exp.(delegating)
		if !ok {
			return exp
		}
		exp = d.Delegate()
	}
}

// Compile translates exp for the given clause.
func Compile(schema *Schema, category Category, exp e.Visitable) (string, error) {
	exp = Unwrap(exp)
	if exp == nil {
		return "", unsupported(nil, "%s has no expression", category)
	}
	v := NewODataVisitor(schema, InCategory(category))
	if err := exp.Accept(v); err != nil {
		return "", err
	}
	return v.Result()
}

// CompileFilter renders a predicate for $filter.
func CompileFilter(schema *Schema, exp e.Visitable) (string, error) {
	return Compile(schema, CategoryFilter, exp)
}

// CompileOrderKey renders one $orderby key; the key must be a bare field.
func CompileOrderKey(schema *Schema, key e.Visitable) (string, error) {
	return Compile(schema, CategoryOrderBy, key)
}

// CompileSelection renders $select members in the given order, dropping
// repeated wire names.
func CompileSelection(schema *Schema, fields []e.Visitable) ([]string, error) {
	names := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		name, err := Compile(schema, CategorySelect, field)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
