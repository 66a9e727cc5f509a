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

// MemberLookupFlags tune LookUpClassMember.
type MemberLookupFlags uint8

const (
	MemberLookupDefault MemberLookupFlags = 0

	// MemberLookupSkipOriginalClass starts the search at the first
	// base class rather than the class itself.
	MemberLookupSkipOriginalClass MemberLookupFlags = 1 << 0

	// MemberLookupSkipBaseClasses searches only the class itself.
	MemberLookupSkipBaseClasses MemberLookupFlags = 1 << 1

	// MemberLookupSkipObjectBaseClass excludes the root object class.
	MemberLookupSkipObjectBaseClass MemberLookupFlags = 1 << 2

	// MemberLookupSkipInstanceVariables excludes instance members.
	MemberLookupSkipInstanceVariables MemberLookupFlags = 1 << 3

	// MemberLookupDeclaredTypesOnly skips symbols without an explicit
	// type declaration. The eventual declared match records that an
	// undeclared shadowing symbol was skipped on the way.
	MemberLookupDeclaredTypesOnly MemberLookupFlags = 1 << 4

	// MemberLookupSkipTypeBaseClass excludes the builtin type class.
	MemberLookupSkipTypeBaseClass MemberLookupFlags = 1 << 5
)

// ClassMember is the result of a member lookup: the symbol and the
// (partially specialized) MRO entry that provides it.
type ClassMember struct {
	Symbol *Symbol

	// ClassType is the MRO entry providing the member, partially
	// specialized against the class the lookup started from. It is
	// Unknown when the member was synthesized for a gradual base.
	ClassType Type

	IsInstanceMember bool
	IsClassMember    bool
	IsClassVar       bool

	// IsTypeDeclared reports whether the symbol has an explicit
	// type declaration.
	IsTypeDeclared bool

	// SkippedUndeclaredType reports that an earlier MRO entry declared
	// the same name without a type and was skipped under
	// MemberLookupDeclaredTypesOnly. The checker warns about the shadow.
	SkippedUndeclaredType bool
}

// LookUpClassMember searches the MRO of the class for a member with the
// given name. Each MRO entry is partially specialized against the
// original class, so inherited annotations are seen with the subclass's
// type arguments. Returns nil if no entry provides the member.
func LookUpClassMember(class *ClassType, name string, flags MemberLookupFlags) *ClassMember {
	skippedUndeclaredType := false

	for mroIndex, entry := range class.Details.MRO {
		if mroIndex == 0 {
			if flags&MemberLookupSkipOriginalClass != 0 {
				continue
			}
		} else if flags&MemberLookupSkipBaseClasses != 0 {
			break
		}

		entryClass, isClass := entry.(*ClassType)
		if !isClass {
			// A gradual base may provide any member; yield a synthetic
			// one so the caller can decide whether to complain.
			if IsAnyOrUnknown(entry) {
				return &ClassMember{
					Symbol: NewSymbolWithType(
						common.DeclarationKindVariable,
						NewUnknownType(),
					),
					ClassType:             NewUnknownType(),
					IsInstanceMember:      flags&MemberLookupSkipInstanceVariables == 0,
					SkippedUndeclaredType: skippedUndeclaredType,
				}
			}
			continue
		}

		if flags&MemberLookupSkipObjectBaseClass != 0 &&
			entryClass.IsBuiltIn("object") {

			continue
		}
		if flags&MemberLookupSkipTypeBaseClass != 0 &&
			entryClass.IsBuiltIn("type") {

			continue
		}

		specializedEntry := entryClass
		if specialized, ok := PartiallySpecializeType(entryClass, class, nil).(*ClassType); ok {
			specializedEntry = specialized
		}

		symbol, ok := specializedEntry.Details.Fields.Get(name)
		if !ok {
			continue
		}

		isInstanceMember := symbol.IsInstanceMember

		// In a data class or typed dict, a typed class-body variable
		// describes a per-instance field, not a class attribute.
		if (entryClass.IsDataClass() || entryClass.IsTypedDict()) &&
			symbol.HasTypedDeclarations() &&
			isVariableSymbol(symbol) {

			isInstanceMember = true
		}

		if isInstanceMember && flags&MemberLookupSkipInstanceVariables != 0 {
			continue
		}

		isTypeDeclared := symbol.HasTypedDeclarations()
		if flags&MemberLookupDeclaredTypesOnly != 0 && !isTypeDeclared {
			skippedUndeclaredType = true
			continue
		}

		return &ClassMember{
			Symbol:                symbol,
			ClassType:             specializedEntry,
			IsInstanceMember:      isInstanceMember,
			IsClassMember:         symbol.IsClassMember,
			IsClassVar:            symbol.IsClassVar,
			IsTypeDeclared:        isTypeDeclared,
			SkippedUndeclaredType: skippedUndeclaredType,
		}
	}

	return nil
}

func isVariableSymbol(symbol *Symbol) bool {
	for _, declaration := range symbol.Declarations {
		if declaration.Kind != common.DeclarationKindVariable {
			return false
		}
	}
	return len(symbol.Declarations) > 0
}

// GetTypeOfMember returns the declared type of a member, partially
// specialized against the MRO entry that provides it.
func GetTypeOfMember(member *ClassMember) Type {
	declaredType := member.Symbol.DeclaredType()
	if declaredType == nil {
		return NewUnknownType()
	}

	providerClass, ok := member.ClassType.(*ClassType)
	if !ok {
		return declaredType
	}

	return PartiallySpecializeType(declaredType, providerClass, nil)
}

// GetClassFieldsRecursive collects all typed member declarations across
// the MRO. Ancestors are visited first, so a descendant's declaration
// overrides an ancestor's.
func GetClassFieldsRecursive(class *ClassType) map[string]*ClassMember {
	memberMap := map[string]*ClassMember{}

	mro := class.Details.MRO
	for mroIndex := len(mro) - 1; mroIndex >= 0; mroIndex-- {
		entryClass, ok := mro[mroIndex].(*ClassType)
		if !ok {
			continue
		}

		specializedEntry := entryClass
		if specialized, ok := PartiallySpecializeType(entryClass, class, nil).(*ClassType); ok {
			specializedEntry = specialized
		}

		specializedEntry.Details.Fields.ForEach(func(name string, symbol *Symbol) bool {
			if !symbol.HasTypedDeclarations() || symbol.IsExternallyHidden {
				return true
			}

			memberMap[name] = &ClassMember{
				Symbol:           symbol,
				ClassType:        specializedEntry,
				IsInstanceMember: symbol.IsInstanceMember,
				IsClassMember:    symbol.IsClassMember,
				IsClassVar:       symbol.IsClassVar,
				IsTypeDeclared:   true,
			}
			return true
		})
	}

	return memberMap
}
