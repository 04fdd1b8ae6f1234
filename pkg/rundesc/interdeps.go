package rundesc

import (
	"sort"

	"github.com/labkit-io/rundesc/pkg/errors"
)

// Keys of the serialized interdependency structures.
const (
	paramSpecsKey   = "paramspecs"
	parametersKey   = "parameters"
	dependenciesKey = "dependencies"
	inferencesKey   = "inferences"
	standalonesKey  = "standalones"
)

// FlatInterDeps is the version 0 interdependency description: every
// parameter is a self-contained ParamSpec carrying its own relation lists.
//
// The spec list is kept sorted by parameter name. Order is not semantic;
// canonicalizing it keeps the mapping form deterministic and makes version
// round trips reproduce it exactly.
type FlatInterDeps struct {
	ParamSpecs []ParamSpec
}

// NewFlatInterDeps builds a FlatInterDeps with the canonical name ordering.
func NewFlatInterDeps(specs ...ParamSpec) FlatInterDeps {
	out := make([]ParamSpec, len(specs))
	copy(out, specs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return FlatInterDeps{ParamSpecs: out}
}

// ToMapping serializes the flat description to its primitive mapping form.
func (f FlatInterDeps) ToMapping() Mapping {
	specs := make([]any, len(f.ParamSpecs))
	for i, p := range f.ParamSpecs {
		specs[i] = p.ToMapping()
	}
	return Mapping{paramSpecsKey: specs}
}

// flatInterDepsFromMapping reconstructs a FlatInterDeps from the value
// stored under the interdependencies key of a version 0 mapping.
func flatInterDepsFromMapping(v any) (FlatInterDeps, error) {
	m, ok := asMapping(v)
	if !ok {
		return FlatInterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
			"interdependencies is not a mapping (got %T)", v)
	}
	raw := m[paramSpecsKey]
	if raw == nil {
		return NewFlatInterDeps(), nil
	}
	list, ok := raw.([]any)
	if !ok {
		return FlatInterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
			"%s is not a list (got %T)", paramSpecsKey, raw)
	}
	specs := make([]ParamSpec, 0, len(list))
	for _, e := range list {
		sm, ok := asMapping(e)
		if !ok {
			return FlatInterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
				"%s entry is not a mapping (got %T)", paramSpecsKey, e)
		}
		spec, err := ParamSpecFromMapping(sm)
		if err != nil {
			return FlatInterDeps{}, err
		}
		specs = append(specs, spec)
	}
	return NewFlatInterDeps(specs...), nil
}

// InterDeps is the version 1 interdependency description: a relation graph
// keyed by parameter name. Dependencies link a measured parameter to its
// setpoints, inferences link a derived parameter to its sources, and
// standalones name parameters with no relations at all.
//
// Relation keys and standalone entries must name registered parameters.
// Relation values may reference names outside the graph; such references
// are preserved but carry no spec of their own.
type InterDeps struct {
	Parameters   map[string]ParamSpecBase
	Dependencies map[string][]string
	Inferences   map[string][]string
	Standalones  []string
}

// Validate checks the internal consistency of the graph.
func (i InterDeps) Validate() error {
	for name := range i.Dependencies {
		if _, ok := i.Parameters[name]; !ok {
			return errors.New(errors.ErrCodeInvalidMapping,
				"dependencies reference unregistered parameter %q", name)
		}
	}
	for name := range i.Inferences {
		if _, ok := i.Parameters[name]; !ok {
			return errors.New(errors.ErrCodeInvalidMapping,
				"inferences reference unregistered parameter %q", name)
		}
	}
	for _, name := range i.Standalones {
		if _, ok := i.Parameters[name]; !ok {
			return errors.New(errors.ErrCodeInvalidMapping,
				"standalones reference unregistered parameter %q", name)
		}
	}
	return nil
}

// ToMapping serializes the graph to its primitive mapping form. All four
// sections are always present, empty when unused.
func (i InterDeps) ToMapping() Mapping {
	params := Mapping{}
	for name, b := range i.Parameters {
		params[name] = b.ToMapping()
	}
	return Mapping{
		parametersKey:   params,
		dependenciesKey: relationsToMapping(i.Dependencies),
		inferencesKey:   relationsToMapping(i.Inferences),
		standalonesKey:  stringsToAny(i.Standalones),
	}
}

func relationsToMapping(rel map[string][]string) Mapping {
	out := Mapping{}
	for name, targets := range rel {
		out[name] = stringsToAny(targets)
	}
	return out
}

// interDepsFromMapping reconstructs an InterDeps from the value stored
// under the interdependencies key of a version 1 mapping. The result is
// validated before it is returned; standalones are canonically sorted.
func interDepsFromMapping(v any) (InterDeps, error) {
	m, ok := asMapping(v)
	if !ok {
		return InterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
			"interdependencies is not a mapping (got %T)", v)
	}

	deps := InterDeps{Parameters: map[string]ParamSpecBase{}}

	if raw := m[parametersKey]; raw != nil {
		pm, ok := asMapping(raw)
		if !ok {
			return InterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
				"%s is not a mapping (got %T)", parametersKey, raw)
		}
		for name, e := range pm {
			sm, ok := asMapping(e)
			if !ok {
				return InterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
					"parameter %q is not a mapping (got %T)", name, e)
			}
			base, err := ParamSpecBaseFromMapping(sm)
			if err != nil {
				return InterDeps{}, err
			}
			if base.Name != name {
				return InterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
					"parameter registered as %q describes itself as %q", name, base.Name)
			}
			deps.Parameters[name] = base
		}
	}

	var err error
	if deps.Dependencies, err = relationsFromMapping(m[dependenciesKey], dependenciesKey); err != nil {
		return InterDeps{}, err
	}
	if deps.Inferences, err = relationsFromMapping(m[inferencesKey], inferencesKey); err != nil {
		return InterDeps{}, err
	}

	standalones, ok := stringsFromAny(m[standalonesKey])
	if !ok {
		return InterDeps{}, errors.New(errors.ErrCodeInvalidMapping,
			"%s is not a list of names", standalonesKey)
	}
	sort.Strings(standalones)
	deps.Standalones = standalones

	if err := deps.Validate(); err != nil {
		return InterDeps{}, err
	}
	return deps, nil
}

func relationsFromMapping(v any, key string) (map[string][]string, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := asMapping(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidMapping,
			"%s is not a mapping (got %T)", key, v)
	}
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string][]string, len(m))
	for name, targets := range m {
		names, ok := stringsFromAny(targets)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidMapping,
				"%s of %q is not a list of names", key, name)
		}
		if names != nil {
			out[name] = names
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
