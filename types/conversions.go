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

// ConvertToInstance projects a type onto its instance form:
// type[C] becomes C, an instantiable type variable becomes an instance
// one, and unions are mapped element-wise. The projection is memoized
// on the type; the cache field is written at most once.
func ConvertToInstance(t Type) Type {
	base := t.base()
	if cached := base.cachedInstance; cached != nil {
		return cached
	}

	result := convertToInstance(t)

	base.cachedInstance = result
	return result
}

func convertToInstance(t Type) Type {
	switch t := t.(type) {
	case *ClassType:
		if t.Flags()&TypeFlagInstantiable != 0 {
			return WithFlags(t, TypeFlagInstance)
		}

	case *TypeVarType:
		if t.Flags()&TypeFlagInstantiable != 0 {
			return WithFlags(t, TypeFlagInstance)
		}

	case *NoneType, *AnyType, *UnknownType:
		if t.Flags() != (TypeFlagInstance | TypeFlagInstantiable) {
			return WithFlags(t, TypeFlagInstance|TypeFlagInstantiable)
		}

	case *UnionType:
		return MapSubtypes(t, func(subtype Type) Type {
			return ConvertToInstance(subtype)
		})
	}

	return t
}

// ConvertToInstantiable projects a type onto its instantiable form:
// an instance C becomes type[C]. Unions are mapped element-wise.
// Like ConvertToInstance, the projection is memoized.
func ConvertToInstantiable(t Type) Type {
	base := t.base()
	if cached := base.cachedInstantiable; cached != nil {
		return cached
	}

	result := convertToInstantiable(t)

	base.cachedInstantiable = result
	return result
}

func convertToInstantiable(t Type) Type {
	switch t := t.(type) {
	case *ClassType:
		if t.Flags()&TypeFlagInstance != 0 {
			return WithFlags(t, TypeFlagInstantiable)
		}

	case *TypeVarType:
		if t.Flags()&TypeFlagInstance != 0 {
			return WithFlags(t, TypeFlagInstantiable)
		}

	case *UnionType:
		return MapSubtypes(t, func(subtype Type) Type {
			return ConvertToInstantiable(subtype)
		})
	}

	return t
}
