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

// ConvertTypeToParamSpecValue converts a type into the Function-shaped
// value of a parameter specification. The bridge keeps the rest of the
// algebra oblivious to the parameter-spec encoding:
//
//   - a parameter specification becomes the identity value: a function
//     whose entire parameter list is the specification itself,
//   - a function becomes itself, marked as a parameter-spec value,
//   - anything else (including the gradual types) becomes the unknown
//     parameter list (*args: Any, **kwargs: Any).
func ConvertTypeToParamSpecValue(t Type) *FunctionType {
	switch t := t.(type) {
	case *TypeVarType:
		if t.Details.Kind == TypeVarKindParamSpec {
			value := NewFunctionType("", FunctionFlagParamSpecValue)
			value.Details.ParamSpec = t
			return value
		}

	case *FunctionType:
		value := t.CloneWithNewDetails()
		value.Details.Flags |= FunctionFlagParamSpecValue
		return value
	}

	value := NewFunctionType(
		"",
		FunctionFlagParamSpecValue|FunctionFlagSkipArgsKwargsCheck,
	)
	anyType := NewAnyType()
	value.AddParameter(Parameter{
		Category:        common.ParameterCategoryVarArgList,
		Name:            "args",
		Type:            anyType,
		HasDeclaredType: true,
	})
	value.AddParameter(Parameter{
		Category:        common.ParameterCategoryVarArgDictionary,
		Name:            "kwargs",
		Type:            anyType,
		HasDeclaredType: true,
	})
	return value
}

// ConvertParamSpecValueToType is the inverse bridge: the identity value
// converts back into the parameter specification itself, any other value
// into a callable. A single positional separator with no name counts as
// "no parameters".
func ConvertParamSpecValueToType(value *FunctionType) Type {
	withoutSeparator := value.Details.Parameters
	if len(withoutSeparator) == 1 && withoutSeparator[0].IsSeparator() {
		withoutSeparator = nil
	}

	if value.Details.ParamSpec != nil && len(withoutSeparator) == 0 {
		return value.Details.ParamSpec
	}

	result := value.CloneWithNewDetails()
	result.Details.Flags |= FunctionFlagParamSpecValue
	return result
}

// RemoveParamSpecVariadicsFromSignature strips a trailing
// *args: P.args, **kwargs: P.kwargs pair from a signature, recording P
// as the signature's parameter specification instead. Signatures are
// normalized this way before matching. Returns the input unchanged when
// the pattern is absent.
func RemoveParamSpecVariadicsFromSignature(fn *FunctionType) *FunctionType {
	parameters := fn.Details.Parameters
	if len(parameters) < 2 || fn.Details.ParamSpec != nil {
		return fn
	}

	argsParameter := parameters[len(parameters)-2]
	kwargsParameter := parameters[len(parameters)-1]

	if argsParameter.Category != common.ParameterCategoryVarArgList ||
		kwargsParameter.Category != common.ParameterCategoryVarArgDictionary {

		return fn
	}

	argsTypeVar, ok := argsParameter.Type.(*TypeVarType)
	if !ok ||
		argsTypeVar.Details.Kind != TypeVarKindParamSpec ||
		argsTypeVar.ParamSpecAccess != ParamSpecAccessArgs {

		return fn
	}

	kwargsTypeVar, ok := kwargsParameter.Type.(*TypeVarType)
	if !ok ||
		kwargsTypeVar.Details.Kind != TypeVarKindParamSpec ||
		kwargsTypeVar.ParamSpecAccess != ParamSpecAccessKwargs {

		return fn
	}

	if argsTypeVar.NameWithScope() != kwargsTypeVar.NameWithScope() {
		return fn
	}

	result := fn.CloneWithNewDetails()
	result.Details.Parameters = result.Details.Parameters[:len(parameters)-2]
	result.Details.ParamSpec = argsTypeVar.CloneForParamSpecAccess(ParamSpecAccessNone)

	if fn.Specialized != nil {
		specialized := *fn.Specialized
		specialized.ParameterTypes = specialized.ParameterTypes[:len(parameters)-2]
		if specialized.ParameterDefaultTypes != nil {
			specialized.ParameterDefaultTypes = specialized.ParameterDefaultTypes[:len(parameters)-2]
		}
		result.Specialized = &specialized
	}

	return result
}

// FunctionHasParamSpecVariadics reports whether the signature ends with
// the *args: P.args, **kwargs: P.kwargs pattern.
func FunctionHasParamSpecVariadics(fn *FunctionType) bool {
	return RemoveParamSpecVariadicsFromSignature(fn) != fn
}
