// Package rundesc defines the versioned run description document: the
// metadata describing what a measurement run recorded and how its
// parameters relate to each other.
//
// The document exists in a closed set of schema versions. Every variant
// implements [Describer] and carries its own integer version tag, which is
// always present in the mapping form under the "version" key. Conversion
// between versions lives in the versioning subpackage; text serialization
// lives in the serialize subpackage.
//
// All types are immutable value objects from the serializer's point of
// view: serialization and conversion never mutate their inputs.
package rundesc

import (
	"sort"

	"github.com/labkit-io/rundesc/pkg/errors"
)

const shapesKey = "shapes"

// Describer is the capability every document variant exposes: its version
// tag and its primitive mapping form.
type Describer interface {
	Version() int
	ToMapping() Mapping
}

// DescriberV0 is the original run description schema: a flat list of
// self-contained param specs.
type DescriberV0 struct {
	InterDeps FlatInterDeps
}

// Version returns 0.
func (*DescriberV0) Version() int { return 0 }

// ToMapping serializes the document to its primitive mapping form. The
// result shares no references with the document and can be handed to a
// text encoder directly.
func (d *DescriberV0) ToMapping() Mapping {
	return Mapping{
		versionKey:   0,
		interdepsKey: d.InterDeps.ToMapping(),
	}
}

// DescriberV0FromMapping reconstructs a version 0 document from its
// mapping form. The mapping's version tag must be 0.
func DescriberV0FromMapping(m Mapping) (*DescriberV0, error) {
	if err := checkVersion(m, 0); err != nil {
		return nil, err
	}
	deps, err := flatInterDepsFromMapping(m[interdepsKey])
	if err != nil {
		return nil, err
	}
	return &DescriberV0{InterDeps: deps}, nil
}

// DescriberV1 is the current run description schema. The interdependency
// graph replaces the flat spec list, and per-parameter result shapes can
// be recorded for array-valued measurements. Shapes is nil when no shape
// information exists.
type DescriberV1 struct {
	InterDeps InterDeps
	Shapes    map[string][]int
}

// Version returns 1.
func (*DescriberV1) Version() int { return 1 }

// ToMapping serializes the document to its primitive mapping form. The
// shapes key is always present and is nil when the document carries no
// shape information.
func (d *DescriberV1) ToMapping() Mapping {
	m := Mapping{
		versionKey:   1,
		interdepsKey: d.InterDeps.ToMapping(),
		shapesKey:    nil,
	}
	if d.Shapes != nil {
		shapes := Mapping{}
		for name, dims := range d.Shapes {
			shapes[name] = intsToAny(dims)
		}
		m[shapesKey] = shapes
	}
	return m
}

// DescriberV1FromMapping reconstructs a version 1 document from its
// mapping form. The mapping's version tag must be 1.
func DescriberV1FromMapping(m Mapping) (*DescriberV1, error) {
	if err := checkVersion(m, 1); err != nil {
		return nil, err
	}
	deps, err := interDepsFromMapping(m[interdepsKey])
	if err != nil {
		return nil, err
	}
	d := &DescriberV1{InterDeps: deps}

	if raw := m[shapesKey]; raw != nil {
		sm, ok := asMapping(raw)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidMapping,
				"%s is not a mapping (got %T)", shapesKey, raw)
		}
		shapes := make(map[string][]int, len(sm))
		for name, dims := range sm {
			ints, ok := intsFromAny(dims)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidMapping,
					"shape of %q is not a list of integers", name)
			}
			shapes[name] = ints
		}
		if len(shapes) > 0 {
			d.Shapes = shapes
		}
	}
	return d, nil
}

// ParamNames returns the registered parameter names in sorted order.
// Convenient for deterministic iteration in tooling and converters.
func (d *DescriberV1) ParamNames() []string {
	names := make([]string, 0, len(d.InterDeps.Parameters))
	for name := range d.InterDeps.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
