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
)

func TestSelfSpecializeClass(t *testing.T) {

	t.Parallel()

	t.Run("a generic class binds its own parameters", func(t *testing.T) {
		t.Parallel()

		typeParameter := newScopedTypeVar("T", TypeVarKindPlain, "test.Box")
		box := NewClassType("Box", "test", ClassFlagNone, []*TypeVarType{typeParameter})

		specialized := SelfSpecializeClass(box)
		require.NotSame(t, box, specialized)
		require.Len(t, specialized.TypeArguments, 1)
		assert.Same(t, Type(typeParameter), specialized.TypeArguments[0])
		assert.False(t, specialized.IsTypeArgumentExplicit)
	})

	t.Run("non-generic and specialized classes pass through", func(t *testing.T) {
		t.Parallel()

		plain := newIntClass()
		assert.Same(t, plain, SelfSpecializeClass(plain))

		typeParameter := newScopedTypeVar("T", TypeVarKindPlain, "test.Box")
		box := NewClassType("Box", "test", ClassFlagNone, []*TypeVarType{typeParameter})
		specialized := box.CloneForSpecialization([]Type{instanceOf(newIntClass())}, true)

		assert.Same(t, specialized, SelfSpecializeClass(specialized))
	})
}

func TestPartiallySpecializeType(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())
	strInstance := instanceOf(newStrClass())

	keyParameter := newScopedTypeVar("K", TypeVarKindPlain, "test.Dict")
	valueParameter := newScopedTypeVar("V", TypeVarKindPlain, "test.Dict")
	dictClass := newTestClass("Dict", []*TypeVarType{keyParameter, valueParameter})

	t.Run("arguments of the context class substitute", func(t *testing.T) {
		t.Parallel()

		specialized := dictClass.CloneForSpecialization(
			[]Type{strInstance, intInstance},
			true,
		)

		assert.Same(t,
			strInstance,
			PartiallySpecializeType(keyParameter, specialized, nil),
		)
		assert.Same(t,
			intInstance,
			PartiallySpecializeType(valueParameter, specialized, nil),
		)
	})

	t.Run("an unspecialized context is the identity substitution", func(t *testing.T) {
		t.Parallel()

		assert.Same(t,
			Type(keyParameter),
			PartiallySpecializeType(keyParameter, dictClass, nil),
		)
	})

	t.Run("foreign type variables are left in place", func(t *testing.T) {
		t.Parallel()

		foreign := newScopedTypeVar("T", TypeVarKindPlain, "elsewhere")
		specialized := dictClass.CloneForSpecialization(
			[]Type{strInstance, intInstance},
			true,
		)

		assert.Same(t,
			Type(foreign),
			PartiallySpecializeType(foreign, specialized, nil),
		)
	})

	t.Run("literal arguments are retained", func(t *testing.T) {
		t.Parallel()

		three := instanceOf(newIntClass()).(*ClassType).CloneForLiteral(int64(3))
		specialized := dictClass.CloneForSpecialization(
			[]Type{three, intInstance},
			true,
		)

		substituted := PartiallySpecializeType(keyParameter, specialized, nil)
		assert.True(t, IsLiteralType(substituted))
	})
}

func TestSynthesizeTypeVarForSelfCls(t *testing.T) {

	t.Parallel()

	typeParameter := newScopedTypeVar("T", TypeVarKindPlain, "test.Box")
	box := newTestClass("Box", []*TypeVarType{typeParameter})

	t.Run("instance form", func(t *testing.T) {
		t.Parallel()

		selfVar := SynthesizeTypeVarForSelfCls(box, true)
		assert.True(t, selfVar.Details.IsSynthesized)
		assert.True(t, selfVar.Details.IsSynthesizedSelf)
		assert.NotZero(t, selfVar.Flags()&TypeFlagInstance)

		bound, ok := selfVar.Details.BoundType.(*ClassType)
		require.True(t, ok)
		assert.True(t, bound.SameGenericClass(box))
		assert.NotZero(t, bound.Flags()&TypeFlagInstance)
	})

	t.Run("instantiable form", func(t *testing.T) {
		t.Parallel()

		selfVar := SynthesizeTypeVarForSelfCls(box, false)
		assert.NotZero(t, selfVar.Flags()&TypeFlagInstantiable)
	})

	t.Run("same class yields interchangeable scopes", func(t *testing.T) {
		t.Parallel()

		first := SynthesizeTypeVarForSelfCls(box, true)
		second := SynthesizeTypeVarForSelfCls(box, true)
		assert.Equal(t, first.NameWithScope(), second.NameWithScope())
	})
}

func TestPartiallySpecializeType_selfClass(t *testing.T) {

	t.Parallel()

	class := newTestClass("Base", nil)
	derived := newTestClass("Derived", nil, class)

	selfVar := SynthesizeTypeVarForSelfCls(class, true)

	// A method returning Self sees the class the access went through.
	substituted := PartiallySpecializeType(selfVar, class, derived)

	result, ok := substituted.(*ClassType)
	require.True(t, ok)
	assert.True(t, result.SameGenericClass(derived))
	assert.NotZero(t, result.Flags()&TypeFlagInstance)
}
