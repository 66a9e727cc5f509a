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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tern-lang/tern/common"
)

func TestTypeString_atoms(t *testing.T) {

	t.Parallel()

	assert.Equal(t, "Unbound", NewUnboundType().String())
	assert.Equal(t, "Unknown", NewUnknownType().String())
	assert.Equal(t, "Any", NewAnyType().String())
	assert.Equal(t, "None", NewNoneType().String())
	assert.Equal(t, "Never", NewNeverType().String())
	assert.Equal(t, `Module("os.path")`, NewModuleType("os.path", nil).String())
}

func TestClassTypeString(t *testing.T) {

	t.Parallel()

	intClass := newIntClass()
	intInstance := instanceOf(intClass).(*ClassType)

	t.Run("instance and instantiable forms", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "int", intInstance.String())
		assert.Equal(t, "type[int]", intClass.String())
	})

	t.Run("specialized classes show their arguments", func(t *testing.T) {
		t.Parallel()

		elementParameter := newScopedTypeVar("E", TypeVarKindPlain, "builtins.list")
		listClass := NewClassType(
			"list",
			"builtins",
			ClassFlagNone,
			[]*TypeVarType{elementParameter},
		)
		listOfInt := instanceOf(listClass.CloneForSpecialization(
			[]Type{intInstance},
			true,
		))

		assert.Equal(t, "list[int]", listOfInt.String())
	})

	t.Run("literals", func(t *testing.T) {
		t.Parallel()

		three := intInstance.CloneForLiteral(int64(3))
		assert.Equal(t, "Literal[3]", three.String())

		name := instanceOf(newStrClass()).(*ClassType).CloneForLiteral("on")
		assert.Equal(t, `Literal["on"]`, name.String())

		instantiable := intClass.CloneForLiteral(int64(3))
		assert.Equal(t, "type[Literal[3]]", instantiable.String())
	})

	t.Run("tuples render structurally", func(t *testing.T) {
		t.Parallel()

		tupleClass := newTupleClass()
		intInstance := instanceOf(newIntClass())
		strInstance := instanceOf(newStrClass())

		fixed := newTupleInstance(tupleClass, intInstance, strInstance)
		assert.Equal(t, "tuple[int, str]", fixed.String())

		unbounded := WithFlags(
			SpecializeTupleClass(
				tupleClass,
				[]TupleTypeArgument{{Type: intInstance, IsUnbounded: true}},
				true,
				false,
			),
			TypeFlagInstance,
		)
		assert.Equal(t, "tuple[int, ...]", unbounded.String())

		empty := WithFlags(
			tupleClass.CloneForTupleSpecialization(
				[]Type{NewNeverType()},
				[]TupleTypeArgument{},
				true,
			),
			TypeFlagInstance,
		)
		assert.Equal(t, "tuple[()]", empty.String())
	})
}

func TestFunctionTypeString(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())
	strInstance := instanceOf(newStrClass())

	t.Run("an empty signature has an unknown return", func(t *testing.T) {
		t.Parallel()

		fn := NewFunctionType("f", FunctionFlagNone)
		assert.Equal(t, "() -> Unknown", fn.String())
	})

	t.Run("parameter kinds", func(t *testing.T) {
		t.Parallel()

		fn := NewFunctionType("f", FunctionFlagNone)
		fn.AddParameter(Parameter{
			Category:        common.ParameterCategorySimple,
			Name:            "x",
			Type:            intInstance,
			HasDeclaredType: true,
		})
		fn.AddParameter(Parameter{
			Category: common.ParameterCategorySimple,
		})
		fn.AddParameter(Parameter{
			Category:        common.ParameterCategorySimple,
			Name:            "flag",
			Type:            strInstance,
			HasDeclaredType: true,
			HasDefault:      true,
		})
		fn.Details.DeclaredReturnType = strInstance

		assert.Equal(t, "(x: int, *, flag: str = ...) -> str", fn.String())
	})

	t.Run("variadic parameters", func(t *testing.T) {
		t.Parallel()

		fn := NewFunctionType("f", FunctionFlagNone)
		fn.AddParameter(Parameter{
			Category:        common.ParameterCategoryVarArgList,
			Name:            "args",
			Type:            intInstance,
			HasDeclaredType: true,
		})
		fn.AddParameter(Parameter{
			Category:        common.ParameterCategoryVarArgDictionary,
			Name:            "kwargs",
			Type:            strInstance,
			HasDeclaredType: true,
		})
		fn.Details.DeclaredReturnType = NewNoneType()

		assert.Equal(t, "(*args: int, **kwargs: str) -> None", fn.String())
	})

	t.Run("a bound parameter specification trails", func(t *testing.T) {
		t.Parallel()

		fn := NewFunctionType("f", FunctionFlagNone)
		fn.AddParameter(Parameter{
			Category:        common.ParameterCategorySimple,
			Name:            "x",
			Type:            intInstance,
			HasDeclaredType: true,
		})
		fn.Details.ParamSpec = newScopedTypeVar("P", TypeVarKindParamSpec, "scope")
		fn.Details.DeclaredReturnType = intInstance

		assert.Equal(t, "(x: int, **P) -> int", fn.String())
	})
}

func TestOverloadedFunctionTypeString(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())
	strInstance := instanceOf(newStrClass())

	first := NewFunctionType("f", FunctionFlagOverloaded)
	first.Details.DeclaredReturnType = intInstance
	second := NewFunctionType("f", FunctionFlagOverloaded)
	second.Details.DeclaredReturnType = strInstance

	overloaded := NewOverloadedFunctionType([]*FunctionType{first, second})
	assert.Equal(t, "Overload[() -> int, () -> str]", overloaded.String())
}

func TestUnionTypeString(t *testing.T) {

	t.Parallel()

	combined := CombineTypes([]Type{
		instanceOf(newIntClass()),
		instanceOf(newStrClass()),
		NewNoneType(),
	})
	assert.Equal(t, "int | str | None", combined.String())
}

func TestTypeVarTypeString(t *testing.T) {

	t.Parallel()

	plain := newScopedTypeVar("T", TypeVarKindPlain, "scope")
	assert.Equal(t, "T", plain.String())

	paramSpec := newScopedTypeVar("P", TypeVarKindParamSpec, "scope")
	assert.Equal(t, "P.args", paramSpec.CloneForParamSpecAccess(ParamSpecAccessArgs).String())
	assert.Equal(t, "P.kwargs", paramSpec.CloneForParamSpecAccess(ParamSpecAccessKwargs).String())

	variadic := newScopedTypeVar("Ts", TypeVarKindVariadic, "scope")
	assert.Equal(t, "Ts", variadic.String())
	assert.Equal(t, "*Ts", variadic.CloneForUnpacked(false).String())
}

func TestWithFlags(t *testing.T) {

	t.Parallel()

	intClass := newIntClass()

	t.Run("matching flags return the same value", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, Type(intClass), WithFlags(intClass, TypeFlagInstantiable))
	})

	t.Run("changed flags clone", func(t *testing.T) {
		t.Parallel()

		instance := WithFlags(intClass, TypeFlagInstance)
		require.NotSame(t, Type(intClass), instance)

		assert.Equal(t, TypeFlagInstance, instance.Flags())
		assert.Equal(t, TypeFlagInstantiable, intClass.Flags())

		// The declaration record is shared.
		assert.Same(t, intClass.Details, instance.(*ClassType).Details)
	})
}

func TestWithAliasInfo(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())

	info := &TypeAliasInfo{
		Name:     "Number",
		FullName: "test.Number",
	}

	aliased := WithAliasInfo(intInstance, info)
	require.NotSame(t, intInstance, aliased)

	assert.Same(t, info, aliased.AliasInfo())
	assert.Nil(t, intInstance.AliasInfo())
	assert.Equal(t, TypeCategoryClass, aliased.Category())
}

func TestConvertToInstance(t *testing.T) {

	t.Parallel()

	t.Run("projects and memoizes", func(t *testing.T) {
		t.Parallel()

		intClass := newIntClass()

		first := ConvertToInstance(intClass)
		assert.NotZero(t, first.Flags()&TypeFlagInstance)

		second := ConvertToInstance(intClass)
		assert.Same(t, first, second)
	})

	t.Run("an instance is already in instance form", func(t *testing.T) {
		t.Parallel()

		intInstance := instanceOf(newIntClass())
		assert.Same(t, intInstance, ConvertToInstance(intInstance))
	})

	t.Run("unions project element-wise", func(t *testing.T) {
		t.Parallel()

		union := CombineTypes([]Type{newIntClass(), newStrClass()})
		projected := ConvertToInstance(union)

		require.IsType(t, &UnionType{}, projected)
		for _, subtype := range projected.(*UnionType).Subtypes {
			assert.NotZero(t, subtype.Flags()&TypeFlagInstance)
		}
	})

	t.Run("type variables project too", func(t *testing.T) {
		t.Parallel()

		typeVar := newScopedTypeVar("T", TypeVarKindPlain, "scope")
		instantiable := ConvertToInstantiable(typeVar)
		require.NotZero(t, instantiable.Flags()&TypeFlagInstantiable)

		roundTripped := ConvertToInstance(instantiable)
		assert.NotZero(t, roundTripped.Flags()&TypeFlagInstance)
		assert.True(t, IsTypeSame(typeVar, roundTripped, TypeSameOptions{}))
	})
}

func TestConvertToInstantiable(t *testing.T) {

	t.Parallel()

	t.Run("projects and memoizes", func(t *testing.T) {
		t.Parallel()

		intInstance := instanceOf(newIntClass())

		first := ConvertToInstantiable(intInstance)
		assert.NotZero(t, first.Flags()&TypeFlagInstantiable)

		second := ConvertToInstantiable(intInstance)
		assert.Same(t, first, second)
	})

	t.Run("gradual types pass through", func(t *testing.T) {
		t.Parallel()

		anyType := NewAnyType()
		assert.Same(t, Type(anyType), ConvertToInstantiable(anyType))
	})

	t.Run("round trip preserves identity of meaning", func(t *testing.T) {
		t.Parallel()

		intClass := newIntClass()
		roundTripped := ConvertToInstantiable(ConvertToInstance(intClass))

		assert.True(t, IsTypeSame(intClass, roundTripped, TypeSameOptions{}))
	})
}

func TestPredicates(t *testing.T) {

	t.Parallel()

	intClass := newIntClass()
	intInstance := instanceOf(intClass)

	t.Run("IsAnyOrUnknown", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsAnyOrUnknown(NewAnyType()))
		assert.True(t, IsAnyOrUnknown(NewUnknownType()))
		assert.False(t, IsAnyOrUnknown(intInstance))

		gradualUnion := &UnionType{
			typeBase: typeBase{flags: TypeFlagInstance},
			Subtypes: []Type{NewAnyType(), NewUnknownType()},
		}
		assert.True(t, IsAnyOrUnknown(gradualUnion))

		mixedUnion := CombineTypes([]Type{NewAnyType(), intInstance})
		assert.False(t, IsAnyOrUnknown(mixedUnion))
	})

	t.Run("class form predicates", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsClassInstance(intInstance))
		assert.False(t, IsClassInstance(intClass))

		assert.True(t, IsInstantiableClass(intClass))
		assert.False(t, IsInstantiableClass(intInstance))

		assert.False(t, IsClassInstance(NewAnyType()))
	})

	t.Run("type variable kinds", func(t *testing.T) {
		t.Parallel()

		plain := newScopedTypeVar("T", TypeVarKindPlain, "scope")
		paramSpec := newScopedTypeVar("P", TypeVarKindParamSpec, "scope")
		variadic := newScopedTypeVar("Ts", TypeVarKindVariadic, "scope")

		assert.True(t, IsTypeVar(plain))
		assert.False(t, IsParamSpec(plain))

		assert.True(t, IsParamSpec(paramSpec))

		assert.True(t, IsVariadicTypeVar(variadic))
		assert.False(t, IsUnpackedVariadicTypeVar(variadic))
		assert.True(t, IsUnpackedVariadicTypeVar(variadic.CloneForUnpacked(false)))
	})

	t.Run("IsLiteralType applies to instances only", func(t *testing.T) {
		t.Parallel()

		three := instanceOf(newIntClass()).(*ClassType).CloneForLiteral(int64(3))
		assert.True(t, IsLiteralType(three))

		instantiableLiteral := newIntClass().CloneForLiteral(int64(3))
		assert.False(t, IsLiteralType(instantiableLiteral))

		assert.False(t, IsLiteralType(intInstance))
	})

	t.Run("IsNoneInstance", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsNoneInstance(NewNoneType()))
		assert.False(t, IsNoneInstance(intInstance))
	})

	t.Run("IsUnionableType requires every entry to be instantiable", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsUnionableType([]Type{intClass, NewNoneType()}))
		assert.False(t, IsUnionableType([]Type{intInstance}))
		assert.False(t, IsUnionableType([]Type{intClass, intInstance}))
	})

	t.Run("tuple predicates", func(t *testing.T) {
		t.Parallel()

		tuple := newTupleInstance(newTupleClass(), intInstance)
		assert.True(t, IsTupleClass(tuple))
		assert.False(t, IsUnpackedTuple(tuple))
		assert.True(t, IsUnpackedTuple(tuple.CloneForUnpacked(true)))
	})
}

func TestContainsLiteralType(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass()).(*ClassType)
	three := intInstance.CloneForLiteral(int64(3))

	assert.True(t, ContainsLiteralType(three, false))
	assert.False(t, ContainsLiteralType(intInstance, false))

	t.Run("unions are searched", func(t *testing.T) {
		t.Parallel()

		union := CombineTypes([]Type{instanceOf(newStrClass()), three})
		assert.True(t, ContainsLiteralType(union, false))
	})

	t.Run("type arguments only when requested", func(t *testing.T) {
		t.Parallel()

		elementParameter := newScopedTypeVar("E", TypeVarKindPlain, "builtins.list")
		listClass := NewClassType(
			"list",
			"builtins",
			ClassFlagNone,
			[]*TypeVarType{elementParameter},
		)
		listOfThree := instanceOf(listClass.CloneForSpecialization(
			[]Type{three},
			true,
		))

		assert.False(t, ContainsLiteralType(listOfThree, false))
		assert.True(t, ContainsLiteralType(listOfThree, true))
	})
}

func TestDoForEachSubtype(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())
	strInstance := instanceOf(newStrClass())

	t.Run("unions iterate per subtype", func(t *testing.T) {
		t.Parallel()

		union := CombineTypes([]Type{intInstance, strInstance})

		var seen []Type
		DoForEachSubtype(union, func(subtype Type, index int) {
			assert.Equal(t, len(seen), index)
			seen = append(seen, subtype)
		})

		assert.Equal(t, []Type{intInstance, strInstance}, seen)
	})

	t.Run("non-unions are visited once", func(t *testing.T) {
		t.Parallel()

		calls := 0
		DoForEachSubtype(intInstance, func(subtype Type, index int) {
			calls++
			assert.Same(t, intInstance, subtype)
			assert.Zero(t, index)
		})
		assert.Equal(t, 1, calls)
	})
}

func TestFunctionEffectiveTypes(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())
	strInstance := instanceOf(newStrClass())

	newSignature := func() *FunctionType {
		fn := NewFunctionType("f", FunctionFlagNone)
		fn.AddParameter(Parameter{
			Category:        common.ParameterCategorySimple,
			Name:            "x",
			Type:            intInstance,
			HasDefault:      true,
			DefaultType:     intInstance,
			HasDeclaredType: true,
		})
		return fn
	}

	t.Run("without an overlay the declaration answers", func(t *testing.T) {
		t.Parallel()

		fn := newSignature()
		fn.Details.DeclaredReturnType = intInstance

		assert.Same(t, intInstance, fn.EffectiveParameterType(0))
		assert.Same(t, intInstance, fn.EffectiveParameterDefaultType(0))
		assert.Same(t, intInstance, fn.EffectiveReturnType())
	})

	t.Run("the overlay wins", func(t *testing.T) {
		t.Parallel()

		fn := newSignature()
		fn.Details.DeclaredReturnType = intInstance

		specialized := fn.CloneForSpecialization(&SpecializedFunctionTypes{
			ParameterTypes:        []Type{strInstance},
			ParameterDefaultTypes: []Type{strInstance},
			ReturnType:            strInstance,
		})
		require.NotSame(t, fn, specialized)

		assert.Same(t, strInstance, specialized.EffectiveParameterType(0))
		assert.Same(t, strInstance, specialized.EffectiveParameterDefaultType(0))
		assert.Same(t, strInstance, specialized.EffectiveReturnType())

		// The original is untouched.
		assert.Same(t, intInstance, fn.EffectiveParameterType(0))
	})

	t.Run("declared return precedes inferred", func(t *testing.T) {
		t.Parallel()

		fn := NewFunctionType("f", FunctionFlagNone)
		fn.InferredReturnType = strInstance
		assert.Same(t, strInstance, fn.EffectiveReturnType())

		fn.Details.DeclaredReturnType = intInstance
		assert.Same(t, intInstance, fn.EffectiveReturnType())
	})
}

func TestCloneWithNewDetails(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())

	fn := NewFunctionType("f", FunctionFlagNone)
	fn.AddParameter(Parameter{
		Category:        common.ParameterCategorySimple,
		Name:            "x",
		Type:            intInstance,
		HasDeclaredType: true,
	})

	clone := fn.CloneWithNewDetails()
	require.NotSame(t, fn.Details, clone.Details)

	clone.Details.Parameters[0].Name = "y"
	clone.AddParameter(Parameter{
		Category: common.ParameterCategorySimple,
		Name:     "z",
	})

	assert.Equal(t, "x", fn.Details.Parameters[0].Name)
	assert.Len(t, fn.Details.Parameters, 1)
	assert.Len(t, clone.Details.Parameters, 2)
}

func TestCloneWithoutLiteral(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass()).(*ClassType)

	t.Run("non-literals are returned unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, intInstance, intInstance.CloneWithoutLiteral())
	})

	t.Run("the literal value is stripped from a copy", func(t *testing.T) {
		t.Parallel()

		three := intInstance.CloneForLiteral(int64(3))
		stripped := three.CloneWithoutLiteral()

		require.NotSame(t, three, stripped)
		assert.Nil(t, stripped.LiteralValue)
		assert.Equal(t, int64(3), three.LiteralValue)
	})
}

func TestTypeVarNameWithScope(t *testing.T) {

	t.Parallel()

	unbound := NewTypeVarType("T", TypeVarKindPlain)
	assert.Equal(t, "T", unbound.NameWithScope())

	bound := unbound.CloneForScopeBinding("test.Box", "Box")
	assert.Equal(t, "T.test.Box", bound.NameWithScope())

	assert.Equal(t, "T", MakeTypeVarNameWithScope("T", ""))
	assert.Equal(t, "T.s", MakeTypeVarNameWithScope("T", "s"))
}

func TestParameterIsSeparator(t *testing.T) {

	t.Parallel()

	separator := Parameter{Category: common.ParameterCategorySimple}
	assert.True(t, separator.IsSeparator())

	named := Parameter{Category: common.ParameterCategorySimple, Name: "x"}
	assert.False(t, named.IsSeparator())

	variadic := Parameter{Category: common.ParameterCategoryVarArgList}
	assert.False(t, variadic.IsSeparator())
}
