package ast

import (
	"fmt"
	"strings"
)

// FromJSON builds a program from a decoded document. The document is the
// generic form produced by any of the loaders (encoding/json, yaml, CUE):
// a top-level sequence of statements, each dispatched on its shape.
func FromJSON(name string, doc any) (*Program, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("program document must be a sequence, got %T", doc)
	}
	body := make([]Statement, 0, len(items))
	for _, item := range items {
		s, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	return NewProgram(name, body...), nil
}

func decodeStatement(v any) (Statement, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no applicable constructor for statement %v", v)
	}

	switch {
	case has(m, "event") && has(m, "reaction"):
		return decodeReactiveRule(m)
	case has(m, "reaction"):
		return decodeStatement(m["reaction"])
	case has(m, "condition") && has(m, "conclusion"):
		return decodeTransformationalRule(m)
	case has(m, "position"):
		pos, ok := m["position"].(string)
		if !ok {
			return nil, fmt.Errorf("position must be a string, got %v", m["position"])
		}
		if _, isPower := PowerPositions[Position(pos)]; isPower {
			return decodePowerFrame(Position(pos), m)
		}
		return decodeDeonticFrame(Position(pos), m)
	case has(m, "object"):
		return decodeObject(m)
	case has(m, "atomics"):
		return decodeAtomics(m)
	}
	return nil, fmt.Errorf("no applicable constructor for statement %v", v)
}

func decodeReactiveRule(m map[string]any) (Statement, error) {
	event, err := decodeEventRef(m["event"])
	if err != nil {
		return nil, err
	}
	reaction, err := decodeEventRef(m["reaction"])
	if err != nil {
		return nil, err
	}
	rule := NewReactiveRule(event, reaction)
	if alias, ok := m["alias"].(string); ok {
		rule.SetAlias(alias)
	}
	return rule, nil
}

func decodeTransformationalRule(m map[string]any) (Statement, error) {
	antecedent, err := decodeCondition(m["condition"])
	if err != nil {
		return nil, err
	}
	consequent, err := decodeAssertable(m["conclusion"])
	if err != nil {
		return nil, err
	}
	rule := NewTransformationalRule(antecedent, consequent)
	if alias, ok := m["alias"].(string); ok {
		rule.SetAlias(alias)
	}
	return rule, nil
}

func decodePowerFrame(pos Position, m map[string]any) (Statement, error) {
	action, err := decodeActionRef(m["action"])
	if err != nil {
		return nil, err
	}
	consequence, err := decodeEventRef(m["consequence"])
	if err != nil {
		return nil, err
	}
	holder, err := decodeOptionalRef(m, "holder")
	if err != nil {
		return nil, err
	}
	frame := NewPowerFrame(pos, action, consequence, holder)
	if alias, ok := m["alias"].(string); ok {
		frame.SetAlias(alias)
	}
	return frame, nil
}

func decodeDeonticFrame(pos Position, m map[string]any) (Statement, error) {
	action, err := decodeActionRef(m["action"])
	if err != nil {
		return nil, err
	}
	holder, err := decodeOptionalRef(m, "holder")
	if err != nil {
		return nil, err
	}
	counterparty, err := decodeOptionalRef(m, "counterparty")
	if err != nil {
		return nil, err
	}
	violation, err := decodeDeonticSpec(m["violation"])
	if err != nil {
		return nil, err
	}
	fulfillment, err := decodeDeonticSpec(m["fulfillment"])
	if err != nil {
		return nil, err
	}
	termination, err := decodeDeonticSpec(m["termination"])
	if err != nil {
		return nil, err
	}
	frame := NewDeonticFrame(pos, action, holder, counterparty, violation, fulfillment, termination)
	if alias, ok := m["alias"].(string); ok {
		frame.SetAlias(alias)
	}
	return frame, nil
}

// decodeDeonticSpec accepts either an event reference, possibly wrapped
// as {"event": ...}, or a condition: a boolean literal, a bare entity
// name, or a descriptor check.
func decodeDeonticSpec(v any) (*DeonticSpec, error) {
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case bool:
		return &DeonticSpec{Condition: NewBooleanLiteral(t)}, nil
	case string:
		if !strings.HasPrefix(t, "#") {
			cond, err := decodeCondition(t)
			if err != nil {
				return nil, err
			}
			return &DeonticSpec{Condition: cond}, nil
		}
	case map[string]any:
		if inner, ok := t["event"]; ok && len(t) == 1 {
			v = inner
		} else if isConditionShape(t) {
			cond, err := decodeCondition(t)
			if err != nil {
				return nil, err
			}
			return &DeonticSpec{Condition: cond}, nil
		}
	}
	event, err := decodeEventRef(v)
	if err != nil {
		return nil, err
	}
	return &DeonticSpec{Event: event}, nil
}

func isConditionShape(m map[string]any) bool {
	if has(m, "has") || has(m, "scope") {
		return true
	}
	if name, ok := m["object"].(string); ok && has(m, "refinement") && !strings.HasPrefix(name, "#") {
		return true
	}
	if name, ok := m["reference"].(string); ok && has(m, "refinement") && !strings.HasPrefix(name, "#") {
		return true
	}
	return false
}

func decodeObject(m map[string]any) (Statement, error) {
	if has(m, "refinement") {
		return nil, fmt.Errorf("refined object reference %v is not a statement", m)
	}
	name, ok := m["object"].(string)
	if !ok {
		return nil, fmt.Errorf("object name must be a string, got %v", m["object"])
	}

	var body []Statement
	if content, ok := m["content"].([]any); ok {
		for _, item := range content {
			s, err := decodeStatement(item)
			if err != nil {
				return nil, err
			}
			body = append(body, s)
		}
	}

	if params, ok := m["params"]; ok {
		names, err := decodeParams(params)
		if err != nil {
			return nil, err
		}
		return NewCompoundFrame(name, names, body), nil
	}

	obj := NewObject(name, body...)
	if ds, ok := m["descriptors"].([]any); ok {
		for _, d := range ds {
			ref, err := decodeObjectRef(d)
			if err != nil {
				return nil, err
			}
			obj.initialDescriptors = append(obj.initialDescriptors, ref)
		}
	}
	if alias, ok := m["alias"].(string); ok {
		obj.alias = alias
	}
	return obj, nil
}

func decodeParams(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("params must be a sequence of names, got %v", v)
	}
	names := make([]string, len(items))
	for i, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("params must be a sequence of names, got %v", item)
		}
		names[i] = name
	}
	return names, nil
}

func decodeAtomics(m map[string]any) (Statement, error) {
	items, ok := m["atomics"].([]any)
	if !ok {
		return nil, fmt.Errorf("atomics must be a sequence of names, got %v", m["atomics"])
	}
	statements := make([]Statement, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("atomic declaration must be a name, got %v", item)
		}
		statements = append(statements, NewObject(name))
	}
	return NewBatch(statements...), nil
}

func decodeEventRef(v any) (EventRef, error) {
	switch t := v.(type) {
	case string:
		if strings.HasPrefix(t, "#") {
			return NewActionRef(t), nil
		}
		return nil, fmt.Errorf("bare reference %q is not an event", t)
	case map[string]any:
		switch {
		case has(t, "plus"):
			ref, err := decodeObjectRef(t["plus"])
			if err != nil {
				return nil, err
			}
			return NewProductionEventRef(ref, true), nil
		case has(t, "minus"):
			ref, err := decodeObjectRef(t["minus"])
			if err != nil {
				return nil, err
			}
			return NewProductionEventRef(ref, false), nil
		case has(t, "gains"):
			state, ok := t["gains"].(bool)
			if !ok {
				return nil, fmt.Errorf("gains must be a boolean, got %v", t["gains"])
			}
			entity, err := decodeObjectRef(t["entity"])
			if err != nil {
				return nil, err
			}
			descriptor, err := decodeObjectRef(t["descriptor"])
			if err != nil {
				return nil, err
			}
			return NewNamingEventRef(entity, descriptor, state), nil
		case has(t, "event") && has(t, "refinement"):
			return decodeActionRef(t)
		case has(t, "reference") && has(t, "refinement"):
			return decodeActionRef(t)
		case has(t, "agent"):
			return decodeActionRef(t)
		}
	}
	return nil, fmt.Errorf("no applicable constructor for event %v", v)
}

func decodeActionRef(v any) (*ActionRef, error) {
	switch t := v.(type) {
	case string:
		if !strings.HasPrefix(t, "#") {
			return nil, fmt.Errorf("action name %q must start with #", t)
		}
		return NewActionRef(t), nil
	case map[string]any:
		name, _ := firstString(t, "event", "reference", "action")
		if !strings.HasPrefix(name, "#") {
			return nil, fmt.Errorf("no applicable constructor for action %v", v)
		}
		if has(t, "agent") {
			agent, err := decodeObjectRef(t["agent"])
			if err != nil {
				return nil, err
			}
			return NewAgentActionRef(agent, name), nil
		}
		args, err := decodeRefinement(t["refinement"])
		if err != nil {
			return nil, err
		}
		if args != nil {
			return NewRefinedActionRef(name, args), nil
		}
		return NewActionRef(name), nil
	}
	return nil, fmt.Errorf("no applicable constructor for action %v", v)
}

func decodeObjectRef(v any) (*ObjectRef, error) {
	switch t := v.(type) {
	case string:
		if strings.HasPrefix(t, "#") {
			return nil, fmt.Errorf("action reference %q used where an object is required", t)
		}
		return NewObjectRef(t), nil
	case map[string]any:
		switch {
		case has(t, "scope"):
			return decodeScopedRef(t)
		case has(t, "object") && has(t, "refinement"):
			name, ok := t["object"].(string)
			if !ok {
				return nil, fmt.Errorf("object name must be a string, got %v", t["object"])
			}
			refinement, err := decodeRefinement(t["refinement"])
			if err != nil {
				return nil, err
			}
			return NewRefinedObjectRef(name, refinement), nil
		case has(t, "reference") && has(t, "refinement"):
			name, ok := t["reference"].(string)
			if !ok || strings.HasPrefix(name, "#") {
				return nil, fmt.Errorf("no applicable constructor for reference %v", v)
			}
			refinement, err := decodeRefinement(t["refinement"])
			if err != nil {
				return nil, err
			}
			return NewRefinedObjectRef(name, refinement), nil
		}
	}
	return nil, fmt.Errorf("no applicable constructor for reference %v", v)
}

// decodeScopedRef handles {"scope": S, "name": N} where either side may
// itself be a refined reference.
func decodeScopedRef(t map[string]any) (*ObjectRef, error) {
	parent, err := decodeObjectRef(t["scope"])
	if err != nil {
		return nil, err
	}
	switch name := t["name"].(type) {
	case string:
		return NewScopedObjectRef(parent, name), nil
	case map[string]any:
		inner, err := decodeObjectRef(name)
		if err != nil {
			return nil, err
		}
		inner.parent = parent
		return inner, nil
	}
	return nil, fmt.Errorf("no applicable constructor for scoped reference %v", t)
}

func decodeRefinement(v any) (map[string]*ObjectRef, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("refinement must be a mapping, got %v", v)
	}
	refinement := make(map[string]*ObjectRef, len(m))
	for name, value := range m {
		ref, err := decodeObjectRef(value)
		if err != nil {
			return nil, err
		}
		refinement[name] = ref
	}
	return refinement, nil
}

func decodeCondition(v any) (Condition, error) {
	switch t := v.(type) {
	case bool:
		return NewBooleanLiteral(t), nil
	case string:
		ref, err := decodeObjectRef(t)
		if err != nil {
			return nil, err
		}
		return NewObjectCondition(ref), nil
	case map[string]any:
		switch {
		case has(t, "has"):
			expect, ok := t["has"].(bool)
			if !ok {
				return nil, fmt.Errorf("has must be a boolean, got %v", t["has"])
			}
			entity, err := decodeObjectRef(t["entity"])
			if err != nil {
				return nil, err
			}
			descriptor, err := decodeObjectRef(t["descriptor"])
			if err != nil {
				return nil, err
			}
			return NewDescriptorCondition(entity, descriptor, expect), nil
		case has(t, "plus"):
			ref, err := decodeObjectRef(t["plus"])
			if err != nil {
				return nil, err
			}
			return NewObjectCondition(ref), nil
		case has(t, "minus"):
			ref, err := decodeObjectRef(t["minus"])
			if err != nil {
				return nil, err
			}
			return NewNegatedObjectCondition(ref), nil
		case has(t, "scope") || has(t, "refinement"):
			ref, err := decodeObjectRef(t)
			if err != nil {
				return nil, err
			}
			return NewObjectCondition(ref), nil
		}
	}
	return nil, fmt.Errorf("no applicable constructor for condition %v", v)
}

func decodeAssertable(v any) (Assertable, error) {
	switch t := v.(type) {
	case string:
		ref, err := decodeObjectRef(t)
		if err != nil {
			return nil, err
		}
		return NewProductionEventRef(ref, true), nil
	case map[string]any:
		switch {
		case has(t, "plus"), has(t, "minus"), has(t, "gains"):
			event, err := decodeEventRef(t)
			if err != nil {
				return nil, err
			}
			assertable, ok := event.(Assertable)
			if !ok {
				return nil, fmt.Errorf("event %v cannot serve as a conclusion", v)
			}
			return assertable, nil
		}
	}
	return nil, fmt.Errorf("no applicable constructor for conclusion %v", v)
}

// decodeOptionalRef resolves an optional reference attribute; absence
// yields nil, which the frame constructors default to the wildcard.
func decodeOptionalRef(m map[string]any, key string) (*ObjectRef, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	return decodeObjectRef(v)
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func firstString(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := m[key].(string); ok {
			return s, true
		}
	}
	return "", false
}
