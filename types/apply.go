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

// ApplyTypeVarOptions tune how solved type variables are substituted
// into a type.
type ApplyTypeVarOptions struct {
	// UnknownIfNotFound substitutes Unknown for an in-scope type
	// variable that has no solution in the context.
	UnknownIfNotFound bool

	// UseUnknownOverDefault substitutes Unknown even when the unsolved
	// variable declares a default type.
	UseUnknownOverDefault bool

	// UseNarrowBoundOnly ignores the wide bound of a solution, except
	// when the wide bound contains a literal type.
	UseNarrowBoundOnly bool

	// EliminateUnsolvedInUnions drops in-scope unsolved type variables
	// from unions. Used for residual return types.
	EliminateUnsolvedInUnions bool

	// TypeClassType is the builtin type class. When present, an
	// Any or Unknown replacement in an instantiable position is
	// expressed as type[Any] / type[Unknown] through it.
	TypeClassType *ClassType

	// TupleClassType is the builtin tuple class, used to materialize
	// the solution of a variadic type variable. When absent, the
	// variable's bound serves as the template if it is a tuple class.
	TupleClassType *ClassType
}

// ApplySolvedTypeVars substitutes the solutions recorded in the given
// context into the type. Variables bound in scopes the context does not
// solve for are left in place. When the context carries multiple
// signature contexts, a function transforms into one overload per
// context.
func ApplySolvedTypeVars(t Type, context *TypeVarContext, options ApplyTypeVarOptions) Type {
	if context.IsEmpty() && !options.UnknownIfNotFound {
		return t
	}

	applier := &solvedTypeVarApplier{
		context:     context,
		options:     options,
		activeIndex: -1,
	}

	return ApplyTypeVarTransform(t, &TypeVarTransformer{
		TransformTypeVar:        applier.transformTypeVar,
		TransformParamSpec:      applier.transformParamSpec,
		TransformTupleTypeVar:   applier.transformTupleTypeVar,
		TransformUnionSubtype:   applier.transformUnionSubtype,
		ForEachSignatureContext: applier.forEachSignatureContext,
	})
}

// solvedTypeVarApplier is the policy that rewrites type variables with
// the solutions recorded in a substitution context.
type solvedTypeVarApplier struct {
	context *TypeVarContext
	options ApplyTypeVarOptions

	// activeIndex restricts lookups to a single signature context while
	// a function is transformed per-context. -1 consults all contexts.
	activeIndex int
}

func (a *solvedTypeVarApplier) inSolvedScope(typeVar *TypeVarType) bool {
	return typeVar.ScopeID != "" &&
		a.context.HasSolveForScope(typeVar.ScopeID)
}

func (a *solvedTypeVarApplier) bounds(typeVar *TypeVarType) *TypeVarBounds {
	if a.activeIndex >= 0 {
		return a.context.SignatureContext(a.activeIndex).GetTypeVarBounds(typeVar)
	}
	return a.context.GetTypeVarBounds(typeVar)
}

func (a *solvedTypeVarApplier) paramSpecValue(typeVar *TypeVarType) *FunctionType {
	if a.activeIndex >= 0 {
		return a.context.SignatureContext(a.activeIndex).GetParamSpecType(typeVar)
	}
	return a.context.GetParamSpecType(typeVar)
}

func (a *solvedTypeVarApplier) tupleEntries(typeVar *TypeVarType) []TupleTypeArgument {
	if a.activeIndex >= 0 {
		return a.context.SignatureContext(a.activeIndex).GetTupleTypeVar(typeVar)
	}
	return a.context.GetTupleTypeVar(typeVar)
}

func (a *solvedTypeVarApplier) transformTypeVar(typeVar *TypeVarType, _ int) Type {
	if !a.inSolvedScope(typeVar) {
		return nil
	}

	if typeVar.Details.Kind == TypeVarKindVariadic {
		if entries := a.tupleEntries(typeVar); entries != nil {
			return a.materializeTuple(typeVar, entries)
		}
	}

	if bounds := a.bounds(typeVar); bounds != nil {
		var replacement Type
		if bounds.NarrowBound != nil {
			replacement = bounds.NarrowBound
		} else if bounds.WideBound != nil {
			if !a.options.UseNarrowBoundOnly ||
				ContainsLiteralType(bounds.WideBound, true) {

				replacement = bounds.WideBound
			}
		}

		if replacement != nil {
			if !bounds.RetainLiterals {
				replacement = StripLiteralValue(replacement)
			}
			if typeVar.Flags()&TypeFlagInstantiable != 0 {
				replacement = a.convertToInstantiable(replacement)
			}
			return replacement
		}
	}

	if a.options.UnknownIfNotFound {
		if !a.options.UseUnknownOverDefault &&
			typeVar.Details.DefaultType != nil {

			return typeVar.Details.DefaultType
		}
		return NewUnknownType()
	}

	return nil
}

// convertToInstantiable projects a replacement found in an instantiable
// position. A gradual replacement goes through the type[...] constructor
// when one is configured, so the checker sees type[Unknown] rather than
// a bare Unknown.
func (a *solvedTypeVarApplier) convertToInstantiable(replacement Type) Type {
	if IsAnyOrUnknown(replacement) && a.options.TypeClassType != nil {
		specialized := a.options.TypeClassType.CloneForSpecialization(
			[]Type{replacement},
			false,
		)
		return WithFlags(specialized, TypeFlagInstance)
	}
	return ConvertToInstantiable(replacement)
}

func (a *solvedTypeVarApplier) materializeTuple(
	typeVar *TypeVarType,
	entries []TupleTypeArgument,
) Type {
	template := a.options.TupleClassType
	if template == nil {
		if bound, ok := typeVar.Details.BoundType.(*ClassType); ok &&
			bound.IsTupleClass() {

			template = bound
		}
	}
	if template == nil {
		return nil
	}

	specialized := SpecializeTupleClass(
		template,
		entries,
		true,
		typeVar.IsVariadicUnpacked,
	)
	return WithFlags(specialized, TypeFlagInstance)
}

func (a *solvedTypeVarApplier) transformParamSpec(typeVar *TypeVarType, _ int) *FunctionType {
	if !a.inSolvedScope(typeVar) {
		return nil
	}

	if value := a.paramSpecValue(typeVar); value != nil {
		return value
	}

	if a.options.UnknownIfNotFound {
		return ConvertTypeToParamSpecValue(NewUnknownType())
	}

	return nil
}

func (a *solvedTypeVarApplier) transformTupleTypeVar(typeVar *TypeVarType, _ int) []TupleTypeArgument {
	if !a.inSolvedScope(typeVar) {
		return nil
	}
	return a.tupleEntries(typeVar)
}

func (a *solvedTypeVarApplier) transformUnionSubtype(preTransform, postTransform Type, _ int) Type {
	if !a.options.EliminateUnsolvedInUnions {
		return postTransform
	}

	typeVar, ok := preTransform.(*TypeVarType)
	if !ok || !a.inSolvedScope(typeVar) {
		return postTransform
	}

	// Still the same variable after transformation: unsolved, drop it.
	if postVar, ok := postTransform.(*TypeVarType); ok &&
		postVar.NameWithScope() == typeVar.NameWithScope() {

		return nil
	}

	// UnknownIfNotFound replaced the unsolved variable with Unknown;
	// inside a union the other subtypes carry the information.
	if IsUnknown(postTransform) {
		return nil
	}

	return postTransform
}

func (a *solvedTypeVarApplier) forEachSignatureContext(body func() *FunctionType) []*FunctionType {
	count := a.context.SignatureContextCount()
	if count < 2 {
		return []*FunctionType{body()}
	}

	previousIndex := a.activeIndex
	defer func() {
		a.activeIndex = previousIndex
	}()

	results := make([]*FunctionType, 0, count)
	for i := 0; i < count; i++ {
		a.activeIndex = i
		results = append(results, body())
	}
	return results
}

// TransformExpectedType prepares an expected type for constructor
// matching: type variables bound to scopes that are not live at the
// match site cannot be solved there, so each is replaced by a
// synthesized stand-in that can. Repeated references to the same
// variable map to the same stand-in.
func TransformExpectedType(expectedType Type, liveTypeVarScopes []TypeVarScopeID) Type {
	synthesizedScopeID := NewTypeVarScopeID()
	synthesized := map[string]*TypeVarType{}

	return ApplyTypeVarTransform(expectedType, &TypeVarTransformer{
		TransformTypeVar: func(typeVar *TypeVarType, _ int) Type {
			if typeVar.Details.IsSynthesized {
				return nil
			}
			for _, liveScope := range liveTypeVarScopes {
				if typeVar.ScopeID == liveScope {
					return nil
				}
			}

			key := typeVar.NameWithScope()
			if standIn, ok := synthesized[key]; ok {
				return standIn
			}

			standIn := NewTypeVarType(
				"__expected_"+typeVar.Details.Name,
				typeVar.Details.Kind,
			)
			standIn.Details.IsSynthesized = true
			standIn.Details.BoundType = typeVar.Details.BoundType
			standIn.Details.Variance = typeVar.Details.Variance
			standIn = standIn.CloneForScopeBinding(synthesizedScopeID, "")
			synthesized[key] = standIn
			return standIn
		},
	})
}
