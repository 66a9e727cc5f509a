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

// SpecializeTupleClass produces a tuple class specialized with the given
// structural element types. The class carries both views of its
// elements: the structural TupleTypeArguments list, and a flattened
// union of all element types as the single type argument, which is what
// generic operations over the tuple's base classes see.
//
// An unpacked variadic type variable among the entries is represented
// in the flattened union as an in-union variadic marker.
func SpecializeTupleClass(
	class *ClassType,
	entries []TupleTypeArgument,
	isTypeArgumentExplicit bool,
	isUnpacked bool,
) *ClassType {
	flattened := make([]Type, 0, len(entries))
	for _, entry := range entries {
		if typeVar, ok := entry.Type.(*TypeVarType); ok &&
			typeVar.Details.Kind == TypeVarKindVariadic &&
			typeVar.IsVariadicUnpacked {

			flattened = append(flattened, typeVar.CloneForUnpacked(true))
			continue
		}
		flattened = append(flattened, entry.Type)
	}

	combined := CombineTypes(flattened)

	result := class.CloneForTupleSpecialization(
		[]Type{combined},
		append([]TupleTypeArgument(nil), entries...),
		isTypeArgumentExplicit,
	)

	if isUnpacked != result.IsUnpacked {
		result = result.CloneForUnpacked(isUnpacked)
	}

	return result
}

// IsFixedLengthTuple reports whether the type is a tuple instance whose
// length is statically known: no unbounded entry and no unpacked
// variadic type variable among its elements.
func IsFixedLengthTuple(t Type) bool {
	class, ok := t.(*ClassType)
	if !ok ||
		!class.IsTupleClass() ||
		class.Flags()&TypeFlagInstance == 0 ||
		class.TupleTypeArguments == nil {

		return false
	}

	for _, entry := range class.TupleTypeArguments {
		if entry.IsUnbounded {
			return false
		}
		if IsUnpackedVariadicTypeVar(entry.Type) {
			return false
		}
	}

	return true
}

// CombineSameSizedTuples fuses a union of same-arity fixed-length tuples
// into a single tuple whose i-th element is the union of the i-th
// elements:
//
//	tuple[A1, B1] | tuple[A2, B2]  ->  tuple[A1 | A2, B1 | B2]
//
// If any subtype is not a fixed-length tuple, or the arities disagree,
// the input is returned unchanged.
func CombineSameSizedTuples(t Type) Type {
	union, ok := t.(*UnionType)
	if !ok {
		return t
	}

	var tupleClass *ClassType
	var elementTypes [][]Type

	for _, subtype := range union.Subtypes {
		if !IsFixedLengthTuple(subtype) {
			return t
		}
		class := subtype.(*ClassType)

		if tupleClass == nil {
			tupleClass = class
			elementTypes = make([][]Type, len(class.TupleTypeArguments))
		} else if len(class.TupleTypeArguments) != len(elementTypes) {
			return t
		}

		for i, entry := range class.TupleTypeArguments {
			elementTypes[i] = append(elementTypes[i], entry.Type)
		}
	}

	if tupleClass == nil {
		return t
	}

	combinedEntries := make([]TupleTypeArgument, 0, len(elementTypes))
	for _, elements := range elementTypes {
		combinedEntries = append(combinedEntries, TupleTypeArgument{
			Type: CombineTypes(elements),
		})
	}

	return SpecializeTupleClass(tupleClass, combinedEntries, true, false)
}
