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

// RequiresSpecializationOptions tune the RequiresSpecialization predicate.
type RequiresSpecializationOptions struct {
	// IgnorePseudoGeneric treats pseudo-generic classes as fully
	// specialized. Used at call sites, where pseudo-generic parameters
	// are bound by arguments rather than type arguments.
	IgnorePseudoGeneric bool

	// IgnoreSelf skips synthesized Self type variables.
	// Used during protocol matching.
	IgnoreSelf bool
}

// RequiresSpecialization reports whether the type contains any type
// variable a substitution could still replace. When it returns false,
// the transformer can skip the type entirely.
func RequiresSpecialization(t Type, options RequiresSpecializationOptions) bool {
	return requiresSpecialization(t, options, 0)
}

func requiresSpecialization(t Type, options RequiresSpecializationOptions, depth int) bool {
	if depth > maxRecursionDepth {
		return false
	}

	switch t := t.(type) {
	case *ClassType:
		if t.IsPseudoGeneric() && options.IgnorePseudoGeneric {
			return false
		}

		if t.TypeArguments != nil {
			for _, argument := range t.TypeArguments {
				if requiresSpecialization(argument, options, depth+1) {
					return true
				}
			}
			for _, argument := range t.TupleTypeArguments {
				if requiresSpecialization(argument.Type, options, depth+1) {
					return true
				}
			}
			return false
		}

		return len(t.Details.TypeParameters) > 0

	case *FunctionType:
		if t.Details.ParamSpec != nil {
			return true
		}

		for i := range t.Details.Parameters {
			parameterType := t.EffectiveParameterType(i)
			if parameterType != nil &&
				requiresSpecialization(parameterType, options, depth+1) {

				return true
			}
		}

		returnType := t.EffectiveReturnType()
		return returnType != nil &&
			requiresSpecialization(returnType, options, depth+1)

	case *OverloadedFunctionType:
		for _, overload := range t.Overloads {
			if requiresSpecialization(overload, options, depth+1) {
				return true
			}
		}
		return false

	case *UnionType:
		for _, subtype := range t.Subtypes {
			if requiresSpecialization(subtype, options, depth+1) {
				return true
			}
		}
		return false

	case *TypeVarType:
		// A resolved recursive alias with no generic arguments
		// cannot be specialized any further.
		if t.IsRecursiveAlias() {
			info := t.AliasInfo()
			return info != nil && len(info.TypeArguments) > 0
		}

		if options.IgnoreSelf && t.Details.IsSynthesizedSelf {
			return false
		}

		return true
	}

	return false
}

// IsVarianceOfTypeArgumentCompatible reports whether a type argument is
// compatible with the declared variance of the type parameter it is
// bound to. Variance violations arise when a class redeclares an
// inherited generic base with conflicting variance.
func IsVarianceOfTypeArgumentCompatible(t Type, variance common.Variance) bool {
	return isVarianceOfTypeArgumentCompatible(t, variance, 0)
}

func isVarianceOfTypeArgumentCompatible(
	t Type,
	variance common.Variance,
	depth int,
) bool {
	if depth > maxRecursionDepth {
		return true
	}

	if variance == common.VarianceUnknown || variance == common.VarianceAuto {
		return true
	}

	if typeVar, ok := t.(*TypeVarType); ok &&
		typeVar.Details.Kind == TypeVarKindPlain &&
		!typeVar.Details.IsSynthesized {

		declared := typeVar.Details.Variance
		if declared == common.VarianceUnknown || declared == common.VarianceAuto {
			return true
		}
		return declared == variance
	}

	if class, ok := t.(*ClassType); ok && class.TypeArguments != nil {
		for i, argument := range class.TypeArguments {
			if i >= len(class.Details.TypeParameters) {
				break
			}
			declared := class.Details.TypeParameters[i].Details.Variance

			// The effective variance of an inner argument is the
			// composition of the outer variance with the parameter's
			// declared variance: covariant composes identically,
			// contravariant flips, invariant stays invariant.
			effective := common.VarianceInvariant
			switch declared {
			case common.VarianceCovariant:
				effective = variance
			case common.VarianceContravariant:
				switch variance {
				case common.VarianceCovariant:
					effective = common.VarianceContravariant
				case common.VarianceContravariant:
					effective = common.VarianceCovariant
				default:
					effective = common.VarianceInvariant
				}
			}

			if !isVarianceOfTypeArgumentCompatible(argument, effective, depth+1) {
				return false
			}
		}
	}

	return true
}
