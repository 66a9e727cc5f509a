/*
 * Tern - a static type checker for the Tern scripting language
 *
 * Copyright Tern Language Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

// maxUnionSubtypeCount caps union growth. Pathological programs can
// produce unions with thousands of literal subtypes; above the cap the
// union collapses to the stripped form of its first subtype.
const maxUnionSubtypeCount = 4096

// CombineTypes builds the canonical union of the given types:
// nested unions are flattened, duplicates (by IsTypeSame) are dropped,
// and Never absorbs into the empty set. A single remaining subtype is
// returned unwrapped; an empty set folds to Never.
func CombineTypes(subtypes []Type) Type {
	var flattened []Type
	includesRecursiveAlias := false

	var add func(t Type)
	add = func(t Type) {
		switch t := t.(type) {
		case *NeverType:
			// absorbed

		case *UnionType:
			if t.IncludesRecursiveAlias {
				includesRecursiveAlias = true
			}
			for _, subtype := range t.Subtypes {
				add(subtype)
			}

		default:
			if typeVar, ok := t.(*TypeVarType); ok && typeVar.IsRecursiveAlias() {
				includesRecursiveAlias = true
			}
			for _, existing := range flattened {
				if IsTypeSame(existing, t, TypeSameOptions{}) {
					return
				}
			}
			flattened = append(flattened, t)
		}
	}

	for _, subtype := range subtypes {
		add(subtype)
		if len(flattened) > maxUnionSubtypeCount {
			break
		}
	}

	switch len(flattened) {
	case 0:
		return NewNeverType()
	case 1:
		return flattened[0]
	}

	if len(flattened) > maxUnionSubtypeCount {
		if class, ok := flattened[0].(*ClassType); ok {
			return class.CloneWithoutLiteral()
		}
		return flattened[0]
	}

	return &UnionType{
		typeBase: typeBase{
			flags: TypeFlagInstance,
		},
		Subtypes:               flattened,
		IncludesRecursiveAlias: includesRecursiveAlias,
	}
}

// MapSubtypes applies f to each subtype of a union, dropping subtypes for
// which f returns nil, and folding to Never when everything is dropped.
// The union's conditions are propagated onto each surviving subtype, and
// alias metadata is preserved when the union survives unchanged in shape.
// For a non-union type, MapSubtypes is simply f(t) (nil mapping to Never).
func MapSubtypes(t Type, f func(subtype Type) Type) Type {
	union, ok := t.(*UnionType)
	if !ok {
		mapped := f(t)
		if mapped == nil {
			return NewNeverType()
		}
		return mapped
	}

	var mapped []Type
	changed := false

	for _, subtype := range union.Subtypes {
		result := f(subtype)
		if result == nil {
			changed = true
			continue
		}
		if result != subtype {
			changed = true
		}
		mapped = append(mapped, AddConditionToType(result, union.Conditions()))
	}

	if !changed && union.Conditions() == nil {
		return union
	}

	combined := CombineTypes(mapped)

	if union.AliasInfo() != nil && IsUnion(combined) {
		combined = WithAliasInfo(combined, union.AliasInfo())
	}

	return combined
}

// AddConditionToType attaches the conjunction of the given narrowing
// conditions to a type. The conditions distribute over unions and
// overloads. Atomic tags that cannot carry a condition (Any, Unknown,
// Unbound, Never, Module, TypeVar) are returned unchanged.
func AddConditionToType(t Type, conditions []TypeCondition) Type {
	if len(conditions) == 0 {
		return t
	}

	switch t := t.(type) {
	case *UnboundType, *UnknownType, *AnyType, *NeverType,
		*ModuleType, *TypeVarType:

		return t

	case *UnionType:
		return MapSubtypes(t, func(subtype Type) Type {
			return AddConditionToType(subtype, conditions)
		})

	case *OverloadedFunctionType:
		overloads := make([]*FunctionType, 0, len(t.Overloads))
		for _, overload := range t.Overloads {
			overloads = append(
				overloads,
				AddConditionToType(overload, conditions).(*FunctionType),
			)
		}
		return NewOverloadedFunctionType(overloads)

	default:
		clone := t.shallowClone()
		base := clone.base()
		base.conditions = append(
			append([]TypeCondition(nil), t.Conditions()...),
			conditions...,
		)
		base.resetDerived()
		return clone
	}
}

// PreserveUnknown combines two types so that the Unknown marker is not
// lost: if either side is Unknown, the result is Unknown. Otherwise the
// second type wins. The checker relies on this to distinguish a
// user-declared Any from a type it failed to determine.
func PreserveUnknown(a, b Type) Type {
	if IsUnknown(a) || IsUnknown(b) {
		return NewUnknownType()
	}
	return b
}

// StripLiteralValue removes literal values from a type, widening
// Literal[3] to int. Unions are mapped element-wise.
func StripLiteralValue(t Type) Type {
	switch t := t.(type) {
	case *ClassType:
		if t.Flags()&TypeFlagInstance != 0 && t.LiteralValue != nil {
			return t.CloneWithoutLiteral()
		}
		return t

	case *UnionType:
		return MapSubtypes(t, func(subtype Type) Type {
			return StripLiteralValue(subtype)
		})
	}

	return t
}
