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

package common

// DeclarationKind describes what kind of declaration introduced a symbol.
// The binder assigns one kind per declaration record.
type DeclarationKind int

const (
	DeclarationKindUnknown DeclarationKind = iota
	DeclarationKindVariable
	DeclarationKindParameter
	DeclarationKindFunction
	DeclarationKindMethod
	DeclarationKindClass
	DeclarationKindTypeAlias
	DeclarationKindTypeParameter
	DeclarationKindModule
)

func (k DeclarationKind) IsTypeDeclaration() bool {
	switch k {
	case DeclarationKindClass,
		DeclarationKindTypeAlias,
		DeclarationKindTypeParameter:

		return true

	default:
		return false
	}
}

func (k DeclarationKind) Name() string {
	switch k {
	case DeclarationKindVariable:
		return "variable"
	case DeclarationKindParameter:
		return "parameter"
	case DeclarationKindFunction:
		return "function"
	case DeclarationKindMethod:
		return "method"
	case DeclarationKindClass:
		return "class"
	case DeclarationKindTypeAlias:
		return "type alias"
	case DeclarationKindTypeParameter:
		return "type parameter"
	case DeclarationKindModule:
		return "module"
	}

	return "unknown"
}

func (k DeclarationKind) String() string {
	return k.Name()
}
