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

// IsAnyOrUnknown returns true for the two gradual types, and for a union
// whose subtypes are all gradual.
func IsAnyOrUnknown(t Type) bool {
	switch t := t.(type) {
	case *AnyType, *UnknownType:
		return true

	case *UnionType:
		for _, subtype := range t.Subtypes {
			if !IsAnyOrUnknown(subtype) {
				return false
			}
		}
		return len(t.Subtypes) > 0
	}

	return false
}

func IsUnknown(t Type) bool {
	_, ok := t.(*UnknownType)
	return ok
}

func IsNever(t Type) bool {
	_, ok := t.(*NeverType)
	return ok
}

func IsNoneInstance(t Type) bool {
	none, ok := t.(*NoneType)
	return ok && none.Flags()&TypeFlagInstance != 0
}

// IsClassInstance returns true for a class reference used as a value
// of the class.
func IsClassInstance(t Type) bool {
	class, ok := t.(*ClassType)
	return ok && class.Flags()&TypeFlagInstance != 0
}

// IsInstantiableClass returns true for a class reference used as the
// class object itself.
func IsInstantiableClass(t Type) bool {
	class, ok := t.(*ClassType)
	return ok && class.Flags()&TypeFlagInstantiable != 0
}

func IsFunction(t Type) bool {
	_, ok := t.(*FunctionType)
	return ok
}

func IsOverloadedFunction(t Type) bool {
	_, ok := t.(*OverloadedFunctionType)
	return ok
}

func IsUnion(t Type) bool {
	_, ok := t.(*UnionType)
	return ok
}

func IsTypeVar(t Type) bool {
	_, ok := t.(*TypeVarType)
	return ok
}

// IsParamSpec returns true for a type variable declared as a
// parameter specification.
func IsParamSpec(t Type) bool {
	typeVar, ok := t.(*TypeVarType)
	return ok && typeVar.Details.Kind == TypeVarKindParamSpec
}

// IsVariadicTypeVar returns true for a type variable declared variadic.
func IsVariadicTypeVar(t Type) bool {
	typeVar, ok := t.(*TypeVarType)
	return ok && typeVar.Details.Kind == TypeVarKindVariadic
}

// IsUnpackedVariadicTypeVar returns true for a variadic type variable
// in unpacked position (*Ts).
func IsUnpackedVariadicTypeVar(t Type) bool {
	typeVar, ok := t.(*TypeVarType)
	return ok &&
		typeVar.Details.Kind == TypeVarKindVariadic &&
		typeVar.IsVariadicUnpacked
}

// IsTupleClass returns true for a reference to the builtin tuple class.
func IsTupleClass(t Type) bool {
	class, ok := t.(*ClassType)
	return ok && class.IsTupleClass()
}

// IsUnpackedTuple returns true for an unpacked tuple instance (*tuple[...]).
func IsUnpackedTuple(t Type) bool {
	class, ok := t.(*ClassType)
	return ok && class.IsTupleClass() && class.IsUnpacked
}

// IsLiteralType returns true for a class instance specialized with a
// literal value.
func IsLiteralType(t Type) bool {
	class, ok := t.(*ClassType)
	return ok &&
		class.Flags()&TypeFlagInstance != 0 &&
		class.LiteralValue != nil
}

// IsUnionableType reports whether every entry can legally appear in a
// type-expression union written with the | operator: each entry must be
// usable as a type, i.e. carry the Instantiable flag. None and the
// gradual types carry both flags, so they pass the test.
func IsUnionableType(subtypes []Type) bool {
	allowed := TypeFlagInstantiable
	for _, subtype := range subtypes {
		allowed &= subtype.Flags()
	}

	return allowed != 0
}

// ContainsLiteralType returns true if the type is a literal instance or
// a union containing one. When includeTypeArgs is set, the type arguments
// of a specialized class are searched as well.
func ContainsLiteralType(t Type, includeTypeArgs bool) bool {
	return containsLiteralType(t, includeTypeArgs, 0)
}

func containsLiteralType(t Type, includeTypeArgs bool, depth int) bool {
	if depth > maxRecursionDepth {
		return false
	}

	switch t := t.(type) {
	case *ClassType:
		if t.Flags()&TypeFlagInstance != 0 &&
			(t.LiteralValue != nil || t.IsBuiltIn("LiteralString")) {

			return true
		}

		if includeTypeArgs {
			for _, arg := range t.TypeArguments {
				if containsLiteralType(arg, includeTypeArgs, depth+1) {
					return true
				}
			}
			for _, arg := range t.TupleTypeArguments {
				if containsLiteralType(arg.Type, includeTypeArgs, depth+1) {
					return true
				}
			}
		}

	case *UnionType:
		for _, subtype := range t.Subtypes {
			if containsLiteralType(subtype, includeTypeArgs, depth+1) {
				return true
			}
		}
	}

	return false
}

// DoForEachSubtype calls f once per union subtype, or once for the type
// itself when it is not a union.
func DoForEachSubtype(t Type, f func(subtype Type, index int)) {
	if union, ok := t.(*UnionType); ok {
		for i, subtype := range union.Subtypes {
			f(subtype, i)
		}
		return
	}

	f(t, 0)
}
