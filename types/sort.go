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
	"fmt"
	"sort"
)

// SortTypes establishes a total order over types, used wherever the
// algebra must produce deterministic output (e.g. printed unions).
// The input slice is not modified.
func SortTypes(typesToSort []Type) []Type {
	sorted := append([]Type(nil), typesToSort...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareTypes(sorted[i], sorted[j], 0) < 0
	})
	return sorted
}

func compareTypes(a, b Type, depth int) int {
	if depth > maxRecursionDepth {
		return 0
	}

	// Primary key: category, descending.
	if a.Category() != b.Category() {
		if a.Category() > b.Category() {
			return -1
		}
		return 1
	}

	switch a := a.(type) {
	case *ClassType:
		return compareClasses(a, b.(*ClassType), depth)

	case *FunctionType:
		return compareFunctions(a, b.(*FunctionType), depth)

	case *OverloadedFunctionType:
		bOverloaded := b.(*OverloadedFunctionType)
		if len(a.Overloads) != len(bOverloaded.Overloads) {
			return len(bOverloaded.Overloads) - len(a.Overloads)
		}
		for i, overload := range a.Overloads {
			if result := compareFunctions(overload, bOverloaded.Overloads[i], depth+1); result != 0 {
				return result
			}
		}
		return 0

	case *ModuleType:
		return compareStrings(a.ModuleName, b.(*ModuleType).ModuleName)

	case *TypeVarType:
		return compareStrings(a.Details.Name, b.(*TypeVarType).Details.Name)
	}

	return 0
}

func compareClasses(a, b *ClassType, depth int) int {
	// Instances precede instantiables.
	aInstance := a.Flags()&TypeFlagInstance != 0
	bInstance := b.Flags()&TypeFlagInstance != 0
	if aInstance != bInstance {
		if aInstance {
			return -1
		}
		return 1
	}

	// Literals precede non-literals.
	if a.IsLiteral() != b.IsLiteral() {
		if a.IsLiteral() {
			return -1
		}
		return 1
	}

	if a.IsLiteral() && b.IsLiteral() {
		if result := compareStrings(a.Details.FullName, b.Details.FullName); result != 0 {
			return result
		}
		return compareStrings(
			fmt.Sprint(a.LiteralValue),
			fmt.Sprint(b.LiteralValue),
		)
	}

	// Non-generic classes precede generic ones.
	aGeneric := len(a.Details.TypeParameters) > 0
	bGeneric := len(b.Details.TypeParameters) > 0
	if aGeneric != bGeneric {
		if !aGeneric {
			return -1
		}
		return 1
	}

	return compareStrings(a.Details.FullName, b.Details.FullName)
}

func compareFunctions(a, b *FunctionType, depth int) int {
	aParameters := a.Details.Parameters
	bParameters := b.Details.Parameters

	// Longer signatures first.
	if len(aParameters) != len(bParameters) {
		return len(bParameters) - len(aParameters)
	}

	for i := range aParameters {
		aParameterType := a.EffectiveParameterType(i)
		bParameterType := b.EffectiveParameterType(i)
		if (aParameterType == nil) != (bParameterType == nil) {
			if aParameterType == nil {
				return 1
			}
			return -1
		}
		if aParameterType != nil {
			if result := compareTypes(aParameterType, bParameterType, depth+1); result != 0 {
				return result
			}
		}
	}

	aReturnType := a.EffectiveReturnType()
	bReturnType := b.EffectiveReturnType()
	if (aReturnType == nil) != (bReturnType == nil) {
		if aReturnType == nil {
			return 1
		}
		return -1
	}
	if aReturnType != nil {
		if result := compareTypes(aReturnType, bReturnType, depth+1); result != 0 {
			return result
		}
	}

	return compareStrings(a.Details.Name, b.Details.Name)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
