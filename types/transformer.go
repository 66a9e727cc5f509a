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
	"fmt"

	"github.com/tern-lang/tern/common"
)

// TypeVarTransformer walks an arbitrary type and rewrites its type
// variables through a pluggable substitution policy. The recursion
// engine is shared by every concrete transformer; the four policy
// callbacks specialize it.
//
// All callbacks are optional. A nil callback leaves the corresponding
// kind of type variable untouched.
type TypeVarTransformer struct {
	// TransformTypeVar returns the replacement for a plain or variadic
	// type variable, or nil to leave the variable in place. The engine
	// recursively transforms the replacement, so chained substitutions
	// resolve in a single application.
	TransformTypeVar func(typeVar *TypeVarType, depth int) Type

	// TransformParamSpec returns the parameter list that replaces a
	// parameter specification, or nil.
	TransformParamSpec func(typeVar *TypeVarType, depth int) *FunctionType

	// TransformTupleTypeVar returns the element list that replaces a
	// variadic type variable in a tuple argument position, or nil.
	TransformTupleTypeVar func(typeVar *TypeVarType, depth int) []TupleTypeArgument

	// TransformUnionSubtype post-processes a union subtype after its own
	// transformation. Returning nil drops the subtype from the union.
	TransformUnionSubtype func(preTransform, postTransform Type, depth int) Type

	// ForEachSignatureContext runs the function-transformation body once
	// per alternative solution set, returning one signature per set.
	// When nil, the body runs exactly once. Solving against an overloaded
	// callee yields multiple solution sets; transforming a function under
	// such a substitution produces one overload per set.
	ForEachSignatureContext func(body func() *FunctionType) []*FunctionType

	// pendingTypeVars holds the identities of type variables whose
	// transformation is in progress, cutting cycles through a variable's
	// own bound or through a recursive alias.
	pendingTypeVars map[string]struct{}

	// pendingFunctions holds the function and overload types currently
	// being rewritten, cutting identity cycles in overload sets.
	pendingFunctions []Type
}

// ApplyTypeVarTransform applies the transformer's substitution policy
// to the given type. The input is returned unchanged when it contains
// nothing a substitution could replace.
func ApplyTypeVarTransform(t Type, transformer *TypeVarTransformer) Type {
	return transformer.apply(t, 0)
}

func (tr *TypeVarTransformer) apply(t Type, depth int) Type {
	// Pathological recursive aliases are cut off by the depth bound:
	// above it, returning the input unchanged is conservatively correct.
	if depth > maxRecursionDepth {
		return t
	}

	if !RequiresSpecialization(t, RequiresSpecializationOptions{}) {
		return t
	}

	// Transform the arguments of a generic type alias, preserving the
	// alias name and scope so diagnostics keep printing the alias.
	aliasInfo := t.AliasInfo()
	var newAliasArguments []Type
	aliasArgumentsChanged := false
	if aliasInfo != nil && aliasInfo.TypeArguments != nil {
		newAliasArguments = make([]Type, 0, len(aliasInfo.TypeArguments))
		for _, argument := range aliasInfo.TypeArguments {
			transformed := tr.apply(argument, depth+1)
			if transformed != argument {
				aliasArgumentsChanged = true
			}
			newAliasArguments = append(newAliasArguments, transformed)
		}
	}

	result := tr.transform(t, depth)

	if aliasArgumentsChanged {
		newAliasInfo := *aliasInfo
		newAliasInfo.TypeArguments = newAliasArguments
		result = WithAliasInfo(result, &newAliasInfo)
	} else if result != t && aliasInfo != nil && result.AliasInfo() == nil {
		result = WithAliasInfo(result, aliasInfo)
	}

	return result
}

func (tr *TypeVarTransformer) transform(t Type, depth int) Type {
	switch t := t.(type) {
	case *UnboundType, *UnknownType, *AnyType, *NoneType, *NeverType, *ModuleType:
		return t

	case *TypeVarType:
		return tr.transformTypeVarType(t, depth)

	case *UnionType:
		return tr.transformUnion(t, depth)

	case *ClassType:
		return tr.transformClass(t, depth)

	case *FunctionType:
		return tr.transformFunction(t, depth)

	case *OverloadedFunctionType:
		return tr.transformOverloaded(t, depth)
	}

	return t
}

func (tr *TypeVarTransformer) transformTypeVarType(typeVar *TypeVarType, depth int) Type {
	// A recursive type alias placeholder is never substituted itself;
	// only its type arguments are, and those were already handled.
	if typeVar.IsRecursiveAlias() {
		return typeVar
	}

	key := typeVar.NameWithScope()
	if tr.isPendingTypeVar(key) {
		return typeVar
	}

	if typeVar.Details.Kind == TypeVarKindParamSpec &&
		typeVar.ParamSpecAccess == ParamSpecAccessNone {

		if tr.TransformParamSpec == nil {
			return typeVar
		}
		value := tr.TransformParamSpec(typeVar, depth)
		if value == nil {
			return typeVar
		}
		return ConvertParamSpecValueToType(value)
	}

	if tr.TransformTypeVar == nil {
		return typeVar
	}

	replacement := tr.TransformTypeVar(typeVar, depth)
	if replacement == nil {
		return typeVar
	}

	if replacement != Type(typeVar) {
		tr.markPendingTypeVar(key)
		replacement = tr.apply(replacement, depth+1)
		tr.unmarkPendingTypeVar(key)
	}

	// A variadic positioned inside a union spills the elements of its
	// solution back into the union.
	if typeVar.Details.Kind == TypeVarKindVariadic && typeVar.IsVariadicInUnion {
		replacement = unpackTupleIntoUnion(replacement)
	}

	return replacement
}

// unpackTupleIntoUnion converts a tuple instance into the union of its
// element types. Non-tuple types are returned unchanged.
func unpackTupleIntoUnion(t Type) Type {
	tupleClass, ok := t.(*ClassType)
	if !ok || !tupleClass.IsTupleClass() || tupleClass.TupleTypeArguments == nil {
		return t
	}

	elementTypes := make([]Type, 0, len(tupleClass.TupleTypeArguments))
	for _, entry := range tupleClass.TupleTypeArguments {
		elementTypes = append(elementTypes, entry.Type)
	}
	return CombineTypes(elementTypes)
}

func (tr *TypeVarTransformer) transformUnion(union *UnionType, depth int) Type {
	result := MapSubtypes(union, func(subtype Type) Type {
		transformed := tr.apply(subtype, depth+1)

		if tr.TransformUnionSubtype != nil {
			transformed = tr.TransformUnionSubtype(subtype, transformed, depth)
		}

		return transformed
	})

	// An empty substituted union carries no information.
	if IsNever(result) {
		return NewUnknownType()
	}

	return result
}

func (tr *TypeVarTransformer) transformClass(class *ClassType, depth int) Type {
	typeParameters := class.Details.TypeParameters
	if len(typeParameters) == 0 && !class.IsSpecialBuiltIn() {
		return class
	}

	changed := false
	var newTypeArguments []Type

	if class.TypeArguments != nil {
		newTypeArguments = make([]Type, 0, len(class.TypeArguments))
		for i, argument := range class.TypeArguments {
			var typeParameter *TypeVarType
			if i < len(typeParameters) {
				typeParameter = typeParameters[i]
			}

			// A parameter-spec position substitutes through the
			// parameter-spec policy, not the plain one.
			if typeParameter != nil &&
				typeParameter.Details.Kind == TypeVarKindParamSpec {

				if argumentVar, ok := argument.(*TypeVarType); ok &&
					argumentVar.Details.Kind == TypeVarKindParamSpec &&
					tr.TransformParamSpec != nil {

					if value := tr.TransformParamSpec(argumentVar, depth); value != nil {
						newTypeArguments = append(
							newTypeArguments,
							ConvertParamSpecValueToType(value),
						)
						changed = true
						continue
					}
				}
			}

			transformed := tr.apply(argument, depth+1)
			if transformed != argument {
				changed = true
			}
			newTypeArguments = append(newTypeArguments, transformed)
		}
	} else {
		// An unspecialized generic: substituting any declared type
		// parameter forces specialization.
		newTypeArguments = make([]Type, 0, len(typeParameters))
		for _, typeParameter := range typeParameters {
			replacement := tr.transformTypeVarType(typeParameter, depth)
			if replacement != Type(typeParameter) {
				changed = true
			}
			newTypeArguments = append(newTypeArguments, replacement)
		}
		if !changed {
			return class
		}
	}

	var newTupleArguments []TupleTypeArgument
	if class.TupleTypeArguments != nil {
		newTupleArguments = make([]TupleTypeArgument, 0, len(class.TupleTypeArguments))
		for _, entry := range class.TupleTypeArguments {
			if typeVar, ok := entry.Type.(*TypeVarType); ok &&
				typeVar.Details.Kind == TypeVarKindVariadic &&
				typeVar.IsVariadicUnpacked &&
				tr.TransformTupleTypeVar != nil {

				if entries := tr.TransformTupleTypeVar(typeVar, depth); entries != nil {
					newTupleArguments = append(newTupleArguments, entries...)
					changed = true
					continue
				}
			}

			transformed := tr.apply(entry.Type, depth+1)
			if transformed != entry.Type {
				changed = true
			}

			// Variadic expansion: a variadic element whose solution is
			// another tuple splices that tuple's elements in place.
			if IsUnpackedVariadicTypeVar(entry.Type) {
				if innerTuple, ok := transformed.(*ClassType); ok &&
					innerTuple.IsTupleClass() &&
					innerTuple.TupleTypeArguments != nil {

					newTupleArguments = append(
						newTupleArguments,
						innerTuple.TupleTypeArguments...,
					)
					continue
				}
			}

			newTupleArguments = append(newTupleArguments, TupleTypeArgument{
				Type:        transformed,
				IsUnbounded: entry.IsUnbounded,
			})
		}
	}

	if !changed {
		return class
	}

	if newTupleArguments != nil {
		return SpecializeTupleClass(
			class,
			newTupleArguments,
			class.IsTypeArgumentExplicit,
			class.IsUnpacked,
		)
	}

	return class.CloneForSpecialization(
		newTypeArguments,
		class.IsTypeArgumentExplicit,
	)
}

func (tr *TypeVarTransformer) transformOverloaded(
	overloaded *OverloadedFunctionType,
	depth int,
) Type {
	if tr.isPendingFunction(overloaded) {
		return overloaded
	}
	tr.pushPendingFunction(overloaded)
	defer tr.popPendingFunction()

	changed := false
	newOverloads := make([]*FunctionType, 0, len(overloaded.Overloads))

	for _, overload := range overloaded.Overloads {
		transformed := tr.apply(overload, depth+1)
		if transformed != Type(overload) {
			changed = true
		}

		// An overload may itself expand into an overload set; flatten.
		switch transformed := transformed.(type) {
		case *FunctionType:
			newOverloads = append(newOverloads, transformed)
		case *OverloadedFunctionType:
			newOverloads = append(newOverloads, transformed.Overloads...)
		default:
			newOverloads = append(newOverloads, overload)
		}
	}

	if !changed {
		return overloaded
	}

	return NewOverloadedFunctionType(newOverloads)
}

func (tr *TypeVarTransformer) transformFunction(fn *FunctionType, depth int) Type {
	if tr.isPendingFunction(fn) {
		return fn
	}
	tr.pushPendingFunction(fn)
	defer tr.popPendingFunction()

	run := tr.ForEachSignatureContext
	if run == nil {
		run = func(body func() *FunctionType) []*FunctionType {
			return []*FunctionType{body()}
		}
	}

	results := run(func() *FunctionType {
		return tr.transformFunctionOnce(fn, depth)
	})

	switch len(results) {
	case 0:
		return fn
	case 1:
		return results[0]
	}

	// Identical alternatives collapse back to a single signature.
	deduped := results[:1]
outer:
	for _, result := range results[1:] {
		for _, existing := range deduped {
			if IsTypeSame(result, existing, TypeSameOptions{}) {
				continue outer
			}
		}
		deduped = append(deduped, result)
	}

	if len(deduped) == 1 {
		return deduped[0]
	}

	overloaded := NewOverloadedFunctionType(deduped)
	overloaded.typeBase.flags = fn.Flags()
	return overloaded
}

func (tr *TypeVarTransformer) transformFunctionOnce(fn *FunctionType, depth int) *FunctionType {
	result := fn

	// Substitute the parameter specification bound at the tail of the
	// signature. Its solution's parameters are appended after the
	// declared ones, and its own residual specification (if any)
	// becomes the new tail.
	if paramSpec := result.Details.ParamSpec; paramSpec != nil &&
		tr.TransformParamSpec != nil {

		if value := tr.TransformParamSpec(paramSpec, depth); value != nil {
			result = result.CloneWithNewDetails()
			result.Details.Parameters = append(
				result.Details.Parameters,
				value.Details.Parameters...,
			)
			result.Details.ParamSpec = value.Details.ParamSpec
		}
	}

	// Substitute the trailing *args: P.args, **kwargs: P.kwargs pattern.
	if tr.TransformParamSpec != nil {
		stripped := RemoveParamSpecVariadicsFromSignature(result)
		if stripped != result {
			if value := tr.TransformParamSpec(stripped.Details.ParamSpec, depth); value != nil {
				residual := value.Details.ParamSpec
				switch {
				case residual != nil && len(value.Details.Parameters) == 0:
					// Substituted by a free parameter specification:
					// keep the variadic encoding, re-targeted at it.
					if residual.NameWithScope() != stripped.Details.ParamSpec.NameWithScope() {
						result = attachParamSpecVariadics(stripped, residual)
					}
				default:
					result = stripped.CloneWithNewDetails()
					result.Details.Parameters = append(
						result.Details.Parameters,
						value.Details.Parameters...,
					)
					result.Details.ParamSpec = residual
				}
			}
		}
	}

	parameters := result.Details.Parameters

	typesRequiredSpecialization := result != fn

	parameterTypes := make([]Type, 0, len(parameters))
	var defaultTypes []Type
	hasDefaultType := false

	for i := range parameters {
		parameterType := result.EffectiveParameterType(i)
		transformed := parameterType
		if parameterType != nil {
			transformed = tr.apply(parameterType, depth+1)
			if transformed != parameterType {
				typesRequiredSpecialization = true
			}
		}
		parameterTypes = append(parameterTypes, transformed)

		defaultType := result.EffectiveParameterDefaultType(i)
		var transformedDefault Type
		if defaultType != nil {
			hasDefaultType = true
			transformedDefault = tr.apply(defaultType, depth+1)
			if transformedDefault != defaultType {
				typesRequiredSpecialization = true
			}
		}
		defaultTypes = append(defaultTypes, transformedDefault)
	}

	var newReturnType Type
	if returnType := result.EffectiveReturnType(); returnType != nil {
		newReturnType = tr.apply(returnType, depth+1)
		if newReturnType != returnType {
			typesRequiredSpecialization = true
		}
	}

	// An unpacked tuple substituted into a *args parameter splices its
	// elements into the signature as individual positional parameters.
	for i, parameter := range parameters {
		if parameter.Category != common.ParameterCategoryVarArgList ||
			parameter.IsSeparator() {

			continue
		}
		if tupleClass, ok := parameterTypes[i].(*ClassType); ok &&
			tupleClass.IsTupleClass() &&
			tupleClass.IsUnpacked &&
			tupleClass.TupleTypeArguments != nil {

			return spliceTupleIntoSignature(
				result,
				parameterTypes,
				defaultTypes,
				newReturnType,
				i,
				tupleClass,
			)
		}
		break
	}

	if !typesRequiredSpecialization {
		return fn
	}

	if !hasDefaultType {
		defaultTypes = nil
	}

	return result.CloneForSpecialization(&SpecializedFunctionTypes{
		ParameterTypes:        parameterTypes,
		ParameterDefaultTypes: defaultTypes,
		ReturnType:            newReturnType,
	})
}

// spliceTupleIntoSignature replaces the variadic positional parameter at
// the given index with the elements of an unpacked tuple: fixed elements
// become synthesized positional parameters, an unbounded element remains
// a *args suffix. When keyword parameters follow and no unbounded tail
// was emitted, a keyword-only separator is synthesized; a separator
// following an unbounded tail is swallowed.
func spliceTupleIntoSignature(
	fn *FunctionType,
	parameterTypes []Type,
	defaultTypes []Type,
	returnType Type,
	variadicIndex int,
	tupleClass *ClassType,
) *FunctionType {
	parameters := fn.Details.Parameters

	newParameters := make([]Parameter, 0, len(parameters)+len(tupleClass.TupleTypeArguments))
	for i := 0; i < variadicIndex; i++ {
		parameter := parameters[i]
		parameter.Type = parameterTypes[i]
		parameter.DefaultType = defaultTypes[i]
		newParameters = append(newParameters, parameter)
	}

	emittedUnbounded := false
	for n, entry := range tupleClass.TupleTypeArguments {
		if entry.IsUnbounded {
			newParameters = append(newParameters, Parameter{
				Category:        common.ParameterCategoryVarArgList,
				Name:            parameters[variadicIndex].Name,
				Type:            entry.Type,
				HasDeclaredType: true,
			})
			emittedUnbounded = true
		} else {
			newParameters = append(newParameters, Parameter{
				Category:        common.ParameterCategorySimple,
				Name:            fmt.Sprintf("__p%d", n),
				Type:            entry.Type,
				HasDeclaredType: true,
			})
		}
	}

	rest := parameters[variadicIndex+1:]
	restTypes := parameterTypes[variadicIndex+1:]
	restDefaults := defaultTypes[variadicIndex+1:]

	if emittedUnbounded {
		if len(rest) > 0 && rest[0].IsSeparator() {
			rest = rest[1:]
			restTypes = restTypes[1:]
			restDefaults = restDefaults[1:]
		}
	} else if len(rest) > 0 && !rest[0].IsSeparator() {
		newParameters = append(newParameters, Parameter{
			Category: common.ParameterCategorySimple,
		})
	}

	for i, parameter := range rest {
		parameter.Type = restTypes[i]
		parameter.DefaultType = restDefaults[i]
		newParameters = append(newParameters, parameter)
	}

	result := fn.CloneWithNewDetails()
	result.Details.Parameters = newParameters
	result.Details.DeclaredReturnType = returnType
	result.Specialized = nil
	result.InferredReturnType = nil
	return result
}

// attachParamSpecVariadics rebuilds the trailing
// *args: P.args, **kwargs: P.kwargs pair for the given specification.
func attachParamSpecVariadics(fn *FunctionType, paramSpec *TypeVarType) *FunctionType {
	result := fn.CloneWithNewDetails()
	result.Details.ParamSpec = nil
	result.Details.Parameters = append(result.Details.Parameters,
		Parameter{
			Category:        common.ParameterCategoryVarArgList,
			Name:            "args",
			Type:            paramSpec.CloneForParamSpecAccess(ParamSpecAccessArgs),
			HasDeclaredType: true,
		},
		Parameter{
			Category:        common.ParameterCategoryVarArgDictionary,
			Name:            "kwargs",
			Type:            paramSpec.CloneForParamSpecAccess(ParamSpecAccessKwargs),
			HasDeclaredType: true,
		},
	)
	return result
}

func (tr *TypeVarTransformer) isPendingTypeVar(key string) bool {
	_, pending := tr.pendingTypeVars[key]
	return pending
}

func (tr *TypeVarTransformer) markPendingTypeVar(key string) {
	if tr.pendingTypeVars == nil {
		tr.pendingTypeVars = map[string]struct{}{}
	}
	tr.pendingTypeVars[key] = struct{}{}
}

func (tr *TypeVarTransformer) unmarkPendingTypeVar(key string) {
	delete(tr.pendingTypeVars, key)
}

func (tr *TypeVarTransformer) isPendingFunction(t Type) bool {
	for _, pending := range tr.pendingFunctions {
		if pending == t {
			return true
		}
	}
	return false
}

func (tr *TypeVarTransformer) pushPendingFunction(t Type) {
	tr.pendingFunctions = append(tr.pendingFunctions, t)
}

func (tr *TypeVarTransformer) popPendingFunction() {
	tr.pendingFunctions = tr.pendingFunctions[:len(tr.pendingFunctions)-1]
}
