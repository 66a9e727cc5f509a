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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

// newPropertyPool builds a fixed set of pairwise distinguishable types
// covering every category the algebra sorts and transforms.
func newPropertyPool() []Type {
	intInstance := instanceOf(newIntClass()).(*ClassType)

	fn := NewFunctionType("f", FunctionFlagNone)
	fn.Details.DeclaredReturnType = intInstance

	return []Type{
		newScopedTypeVar("A", TypeVarKindPlain, "scope"),
		newScopedTypeVar("B", TypeVarKindPlain, "scope"),
		intInstance,
		instanceOf(newStrClass()),
		newIntClass(),
		intInstance.CloneForLiteral(int64(3)),
		fn,
		NewModuleType("alpha", nil),
		NewNoneType(),
		NewAnyType(),
		NewUnknownType(),
		CombineTypes([]Type{intInstance, NewNoneType()}),
	}
}

func TestTypeAlgebraProperties(t *testing.T) {

	t.Parallel()

	pool := newPropertyPool()

	properties := gopter.NewProperties(nil)

	properties.Property("an empty substitution context is the identity", prop.ForAll(
		func(index int) bool {
			input := pool[index]
			context := NewTypeVarContext("scope")
			return ApplySolvedTypeVars(input, context, ApplyTypeVarOptions{}) == input
		},
		gen.IntRange(0, len(pool)-1),
	))

	properties.Property("combining a type with itself changes nothing", prop.ForAll(
		func(index int) bool {
			input := pool[index]
			combined := CombineTypes([]Type{input, input})
			return IsTypeSame(combined, input, TypeSameOptions{})
		},
		gen.IntRange(0, len(pool)-1),
	))

	properties.Property("literal stripping is idempotent", prop.ForAll(
		func(index int) bool {
			once := StripLiteralValue(pool[index])
			return StripLiteralValue(once) == once
		},
		gen.IntRange(0, len(pool)-1),
	))

	properties.Property("mapping the identity over subtypes changes nothing", prop.ForAll(
		func(index int) bool {
			input := pool[index]
			mapped := MapSubtypes(input, func(subtype Type) Type {
				return subtype
			})
			return mapped == input
		},
		gen.IntRange(0, len(pool)-1),
	))

	properties.Property("instance projection is idempotent", prop.ForAll(
		func(index int) bool {
			once := ConvertToInstance(pool[index])
			return ConvertToInstance(once) == once
		},
		gen.IntRange(0, len(pool)-1),
	))

	properties.TestingRun(t)
}

func TestSortTypesProperties(t *testing.T) {

	t.Parallel()

	pool := newPropertyPool()
	reference := SortTypes(pool)

	properties := gopter.NewProperties(nil)

	properties.Property("the order is independent of the input order", prop.ForAll(
		func(i, j int) bool {
			permuted := append([]Type(nil), pool...)
			permuted[i], permuted[j] = permuted[j], permuted[i]

			return assert.ObjectsAreEqual(reference, SortTypes(permuted))
		},
		gen.IntRange(0, len(pool)-1),
		gen.IntRange(0, len(pool)-1),
	))

	properties.Property("sorting is idempotent", prop.ForAll(
		func(i, j int) bool {
			permuted := append([]Type(nil), pool...)
			permuted[i], permuted[j] = permuted[j], permuted[i]

			once := SortTypes(permuted)
			return assert.ObjectsAreEqual(once, SortTypes(once))
		},
		gen.IntRange(0, len(pool)-1),
		gen.IntRange(0, len(pool)-1),
	))

	properties.TestingRun(t)
}

func TestParamSpecRoundTripProperty(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	properties.Property("a specification survives the value round trip", prop.ForAll(
		func(name string) bool {
			paramSpec := newScopedTypeVar(name, TypeVarKindParamSpec, "scope")
			value := ConvertTypeToParamSpecValue(paramSpec)
			return ConvertParamSpecValueToType(value) == Type(paramSpec)
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
