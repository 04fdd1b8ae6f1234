package versioning

import (
	"sort"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc"
)

// upgradeV0ToV1 lifts the flat spec list into the interdependency graph.
// Lossless: every name, attribute and relation survives. Shapes start out
// unset since version 0 has no way to record them.
func upgradeV0ToV1(d rundesc.Describer) (rundesc.Describer, error) {
	v0, ok := d.(*rundesc.DescriberV0)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "upgrade 0 -> 1 applied to %T", d)
	}

	deps := rundesc.InterDeps{
		Parameters: make(map[string]rundesc.ParamSpecBase, len(v0.InterDeps.ParamSpecs)),
	}

	// related tracks every name involved in some relation, on either side.
	related := map[string]bool{}
	for _, spec := range v0.InterDeps.ParamSpecs {
		deps.Parameters[spec.Name] = spec.Base()
		if len(spec.DependsOn) > 0 {
			if deps.Dependencies == nil {
				deps.Dependencies = map[string][]string{}
			}
			deps.Dependencies[spec.Name] = copyNames(spec.DependsOn)
			markRelated(related, spec.Name, spec.DependsOn)
		}
		if len(spec.InferredFrom) > 0 {
			if deps.Inferences == nil {
				deps.Inferences = map[string][]string{}
			}
			deps.Inferences[spec.Name] = copyNames(spec.InferredFrom)
			markRelated(related, spec.Name, spec.InferredFrom)
		}
	}

	for name := range deps.Parameters {
		if !related[name] {
			deps.Standalones = append(deps.Standalones, name)
		}
	}
	sort.Strings(deps.Standalones)

	return &rundesc.DescriberV1{InterDeps: deps}, nil
}

// downgradeV1ToV0 flattens the interdependency graph back into
// self-contained param specs, ordered canonically by name.
//
// Lossy: version 0 has no representation for result shapes, so Shapes is
// dropped. The graph itself converts without loss; standalone membership
// is recomputed from the relation lists on the way back up.
func downgradeV1ToV0(d rundesc.Describer) (rundesc.Describer, error) {
	v1, ok := d.(*rundesc.DescriberV1)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "downgrade 1 -> 0 applied to %T", d)
	}

	specs := make([]rundesc.ParamSpec, 0, len(v1.InterDeps.Parameters))
	for _, name := range v1.ParamNames() {
		base := v1.InterDeps.Parameters[name]
		specs = append(specs, rundesc.ParamSpec{
			Name:         base.Name,
			Type:         base.Type,
			Label:        base.Label,
			Unit:         base.Unit,
			InferredFrom: copyNames(v1.InterDeps.Inferences[name]),
			DependsOn:    copyNames(v1.InterDeps.Dependencies[name]),
		})
	}

	return &rundesc.DescriberV0{InterDeps: rundesc.NewFlatInterDeps(specs...)}, nil
}

func copyNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func markRelated(related map[string]bool, name string, targets []string) {
	related[name] = true
	for _, t := range targets {
		related[t] = true
	}
}
