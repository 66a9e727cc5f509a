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

// Shared fixtures for the type algebra tests. Every builder returns a
// fresh declaration, so tests can mutate the result freely.

func newScopedTypeVar(name string, kind TypeVarKind, scopeID TypeVarScopeID) *TypeVarType {
	return NewTypeVarType(name, kind).CloneForScopeBinding(scopeID, string(scopeID))
}

func newIntClass() *ClassType {
	return NewClassType("int", "builtins", ClassFlagNone, nil)
}

func newStrClass() *ClassType {
	return NewClassType("str", "builtins", ClassFlagNone, nil)
}

func newObjectClass() *ClassType {
	object := NewClassType("object", "builtins", ClassFlagNone, nil)
	ComputeMROLinearization(object)
	return object
}

func newTypeClass() *ClassType {
	typeParameter := newScopedTypeVar("T", TypeVarKindPlain, "builtins.type")
	class := NewClassType(
		"type",
		"builtins",
		ClassFlagSpecialBuiltIn,
		[]*TypeVarType{typeParameter},
	)
	ComputeMROLinearization(class)
	return class
}

func newTupleClass() *ClassType {
	typeParameter := newScopedTypeVar("T", TypeVarKindPlain, "builtins.tuple")
	class := NewClassType(
		"tuple",
		"builtins",
		ClassFlagTupleClass|ClassFlagSpecialBuiltIn,
		[]*TypeVarType{typeParameter},
	)
	ComputeMROLinearization(class)
	return class
}

func newGenericClass() *ClassType {
	return NewClassType("Generic", "builtins", ClassFlagSpecialBuiltIn, nil)
}

// newTestClass declares a class with the given bases and computes its MRO.
func newTestClass(name string, typeParameters []*TypeVarType, bases ...Type) *ClassType {
	class := NewClassType(name, "test", ClassFlagNone, typeParameters)
	class.Details.BaseClasses = bases
	ComputeMROLinearization(class)
	return class
}

func instanceOf(class *ClassType) Type {
	return ConvertToInstance(class)
}

// newTupleInstance builds a tuple instance with fixed elements.
func newTupleInstance(tupleClass *ClassType, elementTypes ...Type) *ClassType {
	entries := make([]TupleTypeArgument, 0, len(elementTypes))
	for _, elementType := range elementTypes {
		entries = append(entries, TupleTypeArgument{Type: elementType})
	}
	specialized := SpecializeTupleClass(tupleClass, entries, true, false)
	return WithFlags(specialized, TypeFlagInstance).(*ClassType)
}

func newTypedVariableSymbol(declaredType Type) *Symbol {
	return NewSymbol(Declaration{
		Kind:              common.DeclarationKindVariable,
		DeclaredType:      declaredType,
		HasTypeAnnotation: true,
	})
}

func newUntypedVariableSymbol() *Symbol {
	return NewSymbol(Declaration{
		Kind: common.DeclarationKindVariable,
	})
}

// mroNames renders an MRO as class names for compact assertions.
func mroNames(class *ClassType) []string {
	names := make([]string, 0, len(class.Details.MRO))
	for _, entry := range class.Details.MRO {
		if entryClass, ok := entry.(*ClassType); ok {
			names = append(names, entryClass.Details.Name)
			continue
		}
		names = append(names, entry.String())
	}
	return names
}
