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

import (
	"github.com/tern-lang/tern/common"
)

// maxRecursionDepth bounds every recursive walk of the algebra.
// Above this depth an operation returns a conservative answer
// instead of recursing further.
const maxRecursionDepth = 64

// TypeSameOptions tune the structural equality relation.
type TypeSameOptions struct {
	// IgnorePseudoGeneric treats two specializations of a
	// pseudo-generic class as the same type.
	IgnorePseudoGeneric bool

	// IgnoreTypeFlags compares types without regard to their
	// instance / instantiable flags.
	IgnoreTypeFlags bool

	// IgnoreConditions compares types without regard to their
	// attached narrowing conditions.
	IgnoreConditions bool

	// TreatAnySameAsUnknown makes Any and Unknown compare equal.
	TreatAnySameAsUnknown bool
}

// IsTypeSame reports whether two types are structurally the same,
// modulo the given options. It is the equivalence relation used by
// every other operation of the algebra.
func IsTypeSame(a, b Type, options TypeSameOptions) bool {
	return isTypeSame(a, b, options, 0)
}

func isTypeSame(a, b Type, options TypeSameOptions, depth int) bool {
	if a == b {
		return true
	}

	if depth > maxRecursionDepth {
		return true
	}

	if a.Category() != b.Category() {
		if options.TreatAnySameAsUnknown {
			if aOrU(a) && aOrU(b) {
				return true
			}
		}
		return false
	}

	if !options.IgnoreTypeFlags && a.Flags() != b.Flags() {
		return false
	}

	if !options.IgnoreConditions &&
		!conditionsSame(a.Conditions(), b.Conditions()) {

		return false
	}

	switch a := a.(type) {
	case *UnboundType, *UnknownType, *AnyType, *NoneType, *NeverType:
		return true

	case *ModuleType:
		return a.ModuleName == b.(*ModuleType).ModuleName

	case *ClassType:
		return classesSame(a, b.(*ClassType), options, depth)

	case *FunctionType:
		return functionsSame(a, b.(*FunctionType), options, depth)

	case *OverloadedFunctionType:
		bOverloaded := b.(*OverloadedFunctionType)
		if len(a.Overloads) != len(bOverloaded.Overloads) {
			return false
		}
		for i, overload := range a.Overloads {
			if !isTypeSame(overload, bOverloaded.Overloads[i], options, depth+1) {
				return false
			}
		}
		return true

	case *UnionType:
		return unionsSame(a, b.(*UnionType), options, depth)

	case *TypeVarType:
		return typeVarsSame(a, b.(*TypeVarType), options, depth)
	}

	return false
}

func aOrU(t Type) bool {
	switch t.Category() {
	case TypeCategoryAny, TypeCategoryUnknown:
		return true
	}
	return false
}

func conditionsSame(a, b []TypeCondition) bool {
	if len(a) != len(b) {
		return false
	}
	for i, condition := range a {
		if condition != b[i] {
			return false
		}
	}
	return true
}

func classesSame(a, b *ClassType, options TypeSameOptions, depth int) bool {
	if !a.SameGenericClass(b) {
		return false
	}

	if a.IsLiteral() || b.IsLiteral() {
		if a.LiteralValue != b.LiteralValue {
			return false
		}
	}

	if options.IgnorePseudoGeneric && a.IsPseudoGeneric() {
		return true
	}

	if a.IsUnpacked != b.IsUnpacked {
		return false
	}

	// A tuple class compares by its structural element types.
	if a.TupleTypeArguments != nil || b.TupleTypeArguments != nil {
		if len(a.TupleTypeArguments) != len(b.TupleTypeArguments) {
			return false
		}
		for i, argument := range a.TupleTypeArguments {
			other := b.TupleTypeArguments[i]
			if argument.IsUnbounded != other.IsUnbounded {
				return false
			}
			if !isTypeSame(argument.Type, other.Type, options, depth+1) {
				return false
			}
		}
		return true
	}

	if (a.TypeArguments == nil) != (b.TypeArguments == nil) {
		return false
	}
	for i, argument := range a.TypeArguments {
		if !isTypeSame(argument, b.TypeArguments[i], options, depth+1) {
			return false
		}
	}

	return true
}

func functionsSame(a, b *FunctionType, options TypeSameOptions, depth int) bool {
	aParameters := a.Details.Parameters
	bParameters := b.Details.Parameters
	if len(aParameters) != len(bParameters) {
		return false
	}

	positionalOnly := true
	for i, parameter := range aParameters {
		other := bParameters[i]

		if parameter.Category != other.Category {
			return false
		}

		if parameter.IsSeparator() {
			positionalOnly = false
			continue
		}

		// Parameter names matter only once keyword passing is possible.
		if parameter.Category != common.ParameterCategorySimple {
			positionalOnly = false
		}
		if !positionalOnly && parameter.Name != other.Name {
			return false
		}

		aParameterType := a.EffectiveParameterType(i)
		bParameterType := b.EffectiveParameterType(i)
		if (aParameterType == nil) != (bParameterType == nil) {
			return false
		}
		if aParameterType != nil &&
			!isTypeSame(aParameterType, bParameterType, options, depth+1) {

			return false
		}
	}

	aParamSpec := a.Details.ParamSpec
	bParamSpec := b.Details.ParamSpec
	if (aParamSpec == nil) != (bParamSpec == nil) {
		return false
	}
	if aParamSpec != nil && aParamSpec.NameWithScope() != bParamSpec.NameWithScope() {
		return false
	}

	aReturnType := a.EffectiveReturnType()
	bReturnType := b.EffectiveReturnType()
	if (aReturnType == nil) != (bReturnType == nil) {
		return false
	}
	if aReturnType != nil &&
		!isTypeSame(aReturnType, bReturnType, options, depth+1) {

		return false
	}

	return true
}

// unionsSame compares unions as sets: every subtype of one must have a
// structurally equal counterpart in the other.
func unionsSame(a, b *UnionType, options TypeSameOptions, depth int) bool {
	if len(a.Subtypes) != len(b.Subtypes) {
		return false
	}

	matched := make([]bool, len(b.Subtypes))
outer:
	for _, subtype := range a.Subtypes {
		for i, other := range b.Subtypes {
			if matched[i] {
				continue
			}
			if isTypeSame(subtype, other, options, depth+1) {
				matched[i] = true
				continue outer
			}
		}
		return false
	}

	return true
}

func typeVarsSame(a, b *TypeVarType, options TypeSameOptions, depth int) bool {
	if a.Details == b.Details && a.ScopeID == b.ScopeID &&
		a.ParamSpecAccess == b.ParamSpecAccess &&
		a.IsVariadicInUnion == b.IsVariadicInUnion {

		return true
	}

	if a.Details.Name != b.Details.Name ||
		a.ScopeID != b.ScopeID ||
		a.Details.Kind != b.Details.Kind ||
		a.ParamSpecAccess != b.ParamSpecAccess ||
		a.IsVariadicInUnion != b.IsVariadicInUnion {

		return false
	}

	aBound := a.Details.BoundType
	bBound := b.Details.BoundType
	if (aBound == nil) != (bBound == nil) {
		return false
	}
	if aBound != nil && !isTypeSame(aBound, bBound, options, depth+1) {
		return false
	}

	if len(a.Details.Constraints) != len(b.Details.Constraints) {
		return false
	}
	for i, constraint := range a.Details.Constraints {
		if !isTypeSame(constraint, b.Details.Constraints[i], options, depth+1) {
			return false
		}
	}

	return true
}
