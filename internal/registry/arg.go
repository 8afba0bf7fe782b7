package registry

import (
	"reflect"

	"github.com/vk/easywork/internal/convert"
	"github.com/vk/easywork/internal/typesystem"
)

// Arg describes one constructor parameter: its name (for keyword lookup)
// and its default value. Default's concrete type is also the argument's
// declared type — there is no separate type field, since a zero-value
// default of the right type is always available for a Go constructor
// parameter.
type Arg struct {
	Name    string
	Default any
}

// extract resolves one argument: positional index first, then kwargs by
// name, then Default. A found value whose type doesn't already match
// Default's type is run through the converter registry; if that also
// misses, Default is substituted rather than failing construction — the
// spec's "on failure the default is substituted" rule.
func extract(a Arg, index int, positional []any, kwargs map[string]any) (any, bool) {
	var value any
	found := false
	if index < len(positional) {
		value, found = positional[index], true
	} else if v, ok := kwargs[a.Name]; ok {
		value, found = v, true
	}

	if !found {
		if a.Default == nil {
			return nil, false
		}
		return a.Default, true
	}

	return castToDefaultType(value, a.Default), true
}

func castToDefaultType(value, def any) any {
	if def == nil || value == nil {
		return value
	}
	wantType := reflect.TypeOf(def)
	gotType := reflect.TypeOf(value)
	if gotType == wantType || gotType.AssignableTo(wantType) {
		return value
	}

	from := typesystem.FromReflectType(gotType)
	to := typesystem.FromReflectType(wantType)
	if converted, ok := convert.Convert(value, from, to); ok {
		return converted
	}
	return def
}
