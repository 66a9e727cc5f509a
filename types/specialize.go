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

// SelfSpecializeClass specializes an unspecialized generic class with
// its own type parameters as arguments, the identity specialization.
// A non-generic or already specialized class is returned unchanged.
func SelfSpecializeClass(class *ClassType) *ClassType {
	typeParameters := class.Details.TypeParameters
	if len(typeParameters) == 0 || class.TypeArguments != nil {
		return class
	}

	typeArguments := make([]Type, 0, len(typeParameters))
	for _, typeParameter := range typeParameters {
		typeArguments = append(typeArguments, typeParameter)
	}

	return class.CloneForSpecialization(typeArguments, false)
}

// buildTypeVarContextFromSpecializedClass records the type arguments of
// a specialized class as the solutions of its type parameters. An
// unspecialized class contributes identity solutions.
func buildTypeVarContextFromSpecializedClass(contextClass *ClassType) *TypeVarContext {
	typeParameters := contextClass.Details.TypeParameters

	typeArguments := contextClass.TypeArguments
	if typeArguments == nil {
		typeArguments = SelfSpecializeClass(contextClass).TypeArguments
	}

	context := NewTypeVarContext()

	for i, typeParameter := range typeParameters {
		if typeParameter.ScopeID != "" {
			context.AddSolveForScope(typeParameter.ScopeID)
		}

		if i >= len(typeArguments) {
			break
		}
		typeArgument := typeArguments[i]

		switch typeParameter.Details.Kind {
		case TypeVarKindParamSpec:
			context.SetParamSpecType(
				typeParameter,
				ConvertTypeToParamSpecValue(typeArgument),
			)

		case TypeVarKindVariadic:
			if tupleClass, ok := typeArgument.(*ClassType); ok &&
				tupleClass.IsTupleClass() &&
				tupleClass.TupleTypeArguments != nil {

				context.SetTupleTypeVar(
					typeParameter,
					tupleClass.TupleTypeArguments,
				)
			} else {
				context.SetTypeVarType(typeParameter, typeArgument, nil, true)
			}

		default:
			context.SetTypeVarType(typeParameter, typeArgument, nil, true)
		}
	}

	return context
}

// PartiallySpecializeType applies the type arguments of the context
// class to the given type. Type variables outside the context class's
// scope are left in place, so the result may itself still be generic.
// When selfClass is provided, synthesized Self references specialize to
// it as well.
func PartiallySpecializeType(t Type, contextClass *ClassType, selfClass Type) Type {
	context := buildTypeVarContextFromSpecializedClass(contextClass)

	if selfClass != nil {
		populateTypeVarContextForSelfType(context, contextClass, selfClass)
	}

	return ApplySolvedTypeVars(t, context, ApplyTypeVarOptions{})
}

// selfTypeVarScopeID is the scope that binds the synthesized Self type
// variable of a class. Deriving it from the class identity makes every
// synthesized Self of the same class interchangeable.
func selfTypeVarScopeID(class *ClassType) TypeVarScopeID {
	return TypeVarScopeID(class.Details.FullName + ".<Self>")
}

// SynthesizeTypeVarForSelfCls creates the synthesized Self type variable
// of the given class, bound to the class's identity specialization.
func SynthesizeTypeVarForSelfCls(class *ClassType, isInstance bool) *TypeVarType {
	selfVar := NewTypeVarType("Self", TypeVarKindPlain)
	selfVar.Details.IsSynthesized = true
	selfVar.Details.IsSynthesizedSelf = true
	selfVar.Details.BoundType = WithFlags(
		SelfSpecializeClass(class),
		TypeFlagInstance,
	)

	selfVar = selfVar.CloneForScopeBinding(
		selfTypeVarScopeID(class),
		class.Details.Name,
	)

	if !isInstance {
		return WithFlags(selfVar, TypeFlagInstantiable).(*TypeVarType)
	}
	return selfVar
}

// populateTypeVarContextForSelfType records the solution of the
// synthesized Self type variable of the context class.
func populateTypeVarContextForSelfType(
	context *TypeVarContext,
	contextClass *ClassType,
	selfClass Type,
) {
	selfVar := SynthesizeTypeVarForSelfCls(contextClass, true)
	context.AddSolveForScope(selfVar.ScopeID)
	context.SetTypeVarType(selfVar, ConvertToInstance(selfClass), nil, true)
}
