package rundesc

import "github.com/labkit-io/rundesc/pkg/errors"

// Keys of a serialized param spec.
const (
	nameKey         = "name"
	paramTypeKey    = "paramtype"
	labelKey        = "label"
	unitKey         = "unit"
	inferredFromKey = "inferred_from"
	dependsOnKey    = "depends_on"
)

// ParamSpec fully describes one parameter in the flat (version 0) schema:
// its identity and storage type plus the names of the parameters it depends
// on (its setpoints) and the parameters it is inferred from.
type ParamSpec struct {
	Name         string
	Type         string // storage type, e.g. "numeric", "array" or "text"
	Label        string
	Unit         string
	InferredFrom []string
	DependsOn    []string
}

// ParamSpecBase carries the identity of a parameter in the version 1
// schema. Relations live in the surrounding InterDeps graph instead of on
// the spec itself.
type ParamSpecBase struct {
	Name  string
	Type  string
	Label string
	Unit  string
}

// Base strips the relation lists from p.
func (p ParamSpec) Base() ParamSpecBase {
	return ParamSpecBase{Name: p.Name, Type: p.Type, Label: p.Label, Unit: p.Unit}
}

// ToMapping serializes p to its primitive mapping form. Relation lists are
// always present, as empty lists when the parameter has no relations.
func (p ParamSpec) ToMapping() Mapping {
	return Mapping{
		nameKey:         p.Name,
		paramTypeKey:    p.Type,
		labelKey:        p.Label,
		unitKey:         p.Unit,
		inferredFromKey: stringsToAny(p.InferredFrom),
		dependsOnKey:    stringsToAny(p.DependsOn),
	}
}

// ToMapping serializes b to its primitive mapping form.
func (b ParamSpecBase) ToMapping() Mapping {
	return Mapping{
		nameKey:      b.Name,
		paramTypeKey: b.Type,
		labelKey:     b.Label,
		unitKey:      b.Unit,
	}
}

// ParamSpecFromMapping reconstructs a ParamSpec from its mapping form.
// Name and paramtype are required; label, unit and the relation lists
// default to empty.
func ParamSpecFromMapping(m Mapping) (ParamSpec, error) {
	base, err := ParamSpecBaseFromMapping(m)
	if err != nil {
		return ParamSpec{}, err
	}
	spec := ParamSpec{Name: base.Name, Type: base.Type, Label: base.Label, Unit: base.Unit}

	var ok bool
	if spec.InferredFrom, ok = stringsFromAny(m[inferredFromKey]); !ok {
		return ParamSpec{}, errors.New(errors.ErrCodeInvalidMapping,
			"param spec %q: %s is not a list of names", spec.Name, inferredFromKey)
	}
	if spec.DependsOn, ok = stringsFromAny(m[dependsOnKey]); !ok {
		return ParamSpec{}, errors.New(errors.ErrCodeInvalidMapping,
			"param spec %q: %s is not a list of names", spec.Name, dependsOnKey)
	}
	return spec, nil
}

// ParamSpecBaseFromMapping reconstructs a ParamSpecBase from its mapping form.
func ParamSpecBaseFromMapping(m Mapping) (ParamSpecBase, error) {
	name, ok := m[nameKey].(string)
	if !ok || name == "" {
		return ParamSpecBase{}, errors.New(errors.ErrCodeInvalidMapping, "param spec has no name")
	}
	ptype, ok := m[paramTypeKey].(string)
	if !ok || ptype == "" {
		return ParamSpecBase{}, errors.New(errors.ErrCodeInvalidMapping, "param spec %q has no paramtype", name)
	}
	b := ParamSpecBase{Name: name, Type: ptype}
	if label, ok := m[labelKey].(string); ok {
		b.Label = label
	}
	if unit, ok := m[unitKey].(string); ok {
		b.Unit = unit
	}
	return b, nil
}
