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
	"github.com/tern-lang/tern/errors"
)

// TypeVarBounds is the solution recorded for a plain type variable:
// a narrow bound, a wide bound, and whether literal subtypes are to be
// retained when the solution is applied.
type TypeVarBounds struct {
	TypeVar        *TypeVarType
	NarrowBound    Type
	WideBound      Type
	RetainLiterals bool
}

// SignatureContext is one alternative solution set. Solving against an
// overloaded callee yields one signature context per viable overload.
type SignatureContext struct {
	typeVars   map[string]*TypeVarBounds
	paramSpecs map[string]*FunctionType
	tupleVars  map[string][]TupleTypeArgument
}

func newSignatureContext() *SignatureContext {
	return &SignatureContext{
		typeVars:   map[string]*TypeVarBounds{},
		paramSpecs: map[string]*FunctionType{},
		tupleVars:  map[string][]TupleTypeArgument{},
	}
}

func (c *SignatureContext) isEmpty() bool {
	return len(c.typeVars) == 0 &&
		len(c.paramSpecs) == 0 &&
		len(c.tupleVars) == 0
}

func (c *SignatureContext) clone() *SignatureContext {
	clone := newSignatureContext()
	for key, bounds := range c.typeVars {
		boundsCopy := *bounds
		clone.typeVars[key] = &boundsCopy
	}
	for key, value := range c.paramSpecs {
		clone.paramSpecs[key] = value
	}
	for key, entries := range c.tupleVars {
		clone.tupleVars[key] = append([]TupleTypeArgument(nil), entries...)
	}
	return clone
}

// GetTypeVarBounds returns the bounds recorded for a plain type variable
// in this signature context, or nil.
func (c *SignatureContext) GetTypeVarBounds(typeVar *TypeVarType) *TypeVarBounds {
	return c.typeVars[typeVar.NameWithScope()]
}

// GetParamSpecType returns the parameter list recorded for a parameter
// specification in this signature context, or nil.
func (c *SignatureContext) GetParamSpecType(typeVar *TypeVarType) *FunctionType {
	return c.paramSpecs[typeVar.NameWithScope()]
}

// GetTupleTypeVar returns the element list recorded for a variadic type
// variable in this signature context, or nil.
func (c *SignatureContext) GetTupleTypeVar(typeVar *TypeVarType) []TupleTypeArgument {
	return c.tupleVars[typeVar.NameWithScope()]
}

// TypeVarContext is the substitution context of the algebra: a stack of
// signature contexts mapping type-variable identity to solved values,
// plus the set of type-variable scopes considered in scope for solving.
//
// A context is created at the start of a call or assignment decision,
// mutated by the solver, applied by the transformer, and discarded.
// It is never shared across threads.
type TypeVarContext struct {
	solveForScopes    []TypeVarScopeID
	signatureContexts []*SignatureContext
	locked            bool
}

// NewTypeVarContext creates a context that solves type variables bound
// in the given scopes. Pass WildcardTypeVarScopeID to solve all scopes.
func NewTypeVarContext(solveForScopes ...TypeVarScopeID) *TypeVarContext {
	return &TypeVarContext{
		solveForScopes:    solveForScopes,
		signatureContexts: []*SignatureContext{newSignatureContext()},
	}
}

// Clone returns a deep copy of the context. The copy is unlocked only
// if the original was.
func (c *TypeVarContext) Clone() *TypeVarContext {
	signatureContexts := make([]*SignatureContext, 0, len(c.signatureContexts))
	for _, signatureContext := range c.signatureContexts {
		signatureContexts = append(signatureContexts, signatureContext.clone())
	}
	return &TypeVarContext{
		solveForScopes:    append([]TypeVarScopeID(nil), c.solveForScopes...),
		signatureContexts: signatureContexts,
		locked:            c.locked,
	}
}

func (c *TypeVarContext) HasSolveForScope(scopeID TypeVarScopeID) bool {
	for _, solveForScope := range c.solveForScopes {
		if solveForScope == scopeID ||
			solveForScope == WildcardTypeVarScopeID {

			return true
		}
	}
	return false
}

func (c *TypeVarContext) AddSolveForScope(scopeID TypeVarScopeID) {
	if c.HasSolveForScope(scopeID) {
		return
	}
	c.solveForScopes = append(c.solveForScopes, scopeID)
}

func (c *TypeVarContext) SolveForScopes() []TypeVarScopeID {
	return c.solveForScopes
}

func (c *TypeVarContext) Lock() {
	c.locked = true
}

func (c *TypeVarContext) Unlock() {
	c.locked = false
}

func (c *TypeVarContext) IsLocked() bool {
	return c.locked
}

func (c *TypeVarContext) IsEmpty() bool {
	for _, signatureContext := range c.signatureContexts {
		if !signatureContext.isEmpty() {
			return false
		}
	}
	return true
}

// SignatureContext returns the signature context at the given stack index.
func (c *TypeVarContext) SignatureContext(index int) *SignatureContext {
	return c.signatureContexts[index]
}

func (c *TypeVarContext) SignatureContexts() []*SignatureContext {
	return c.signatureContexts
}

func (c *TypeVarContext) SignatureContextCount() int {
	return len(c.signatureContexts)
}

// AddSignatureContext pushes another alternative solution set, e.g. for
// an additional viable overload.
func (c *TypeVarContext) AddSignatureContext(signatureContext *SignatureContext) {
	c.signatureContexts = append(c.signatureContexts, signatureContext)
}

func (c *TypeVarContext) assertUnlocked() {
	if c.locked {
		panic(errors.NewUnexpectedError("attempt to modify locked type variable context"))
	}
}

// SetTypeVarType records the solution for a plain type variable in every
// signature context. Passing only narrowBound solves the variable exactly.
func (c *TypeVarContext) SetTypeVarType(
	typeVar *TypeVarType,
	narrowBound Type,
	wideBound Type,
	retainLiterals bool,
) {
	c.assertUnlocked()
	key := typeVar.NameWithScope()
	for _, signatureContext := range c.signatureContexts {
		signatureContext.typeVars[key] = &TypeVarBounds{
			TypeVar:        typeVar,
			NarrowBound:    narrowBound,
			WideBound:      wideBound,
			RetainLiterals: retainLiterals,
		}
	}
}

// GetTypeVarType returns the solved type of a plain type variable from
// the first signature context that has one. With narrowOnly set, only
// the narrow bound is consulted; otherwise the narrow bound is preferred
// and the wide bound serves as fallback.
func (c *TypeVarContext) GetTypeVarType(typeVar *TypeVarType, narrowOnly bool) Type {
	bounds := c.GetTypeVarBounds(typeVar)
	if bounds == nil {
		return nil
	}
	if bounds.NarrowBound != nil {
		return bounds.NarrowBound
	}
	if narrowOnly {
		return nil
	}
	return bounds.WideBound
}

// GetTypeVarBounds returns the recorded bounds of a plain type variable,
// or nil if the variable is unsolved.
func (c *TypeVarContext) GetTypeVarBounds(typeVar *TypeVarType) *TypeVarBounds {
	key := typeVar.NameWithScope()
	for _, signatureContext := range c.signatureContexts {
		if bounds, ok := signatureContext.typeVars[key]; ok {
			return bounds
		}
	}
	return nil
}

// SetParamSpecType records the solved parameter list of a parameter
// specification in every signature context.
func (c *TypeVarContext) SetParamSpecType(typeVar *TypeVarType, value *FunctionType) {
	c.assertUnlocked()
	key := typeVar.NameWithScope()
	for _, signatureContext := range c.signatureContexts {
		signatureContext.paramSpecs[key] = value
	}
}

func (c *TypeVarContext) GetParamSpecType(typeVar *TypeVarType) *FunctionType {
	key := typeVar.NameWithScope()
	for _, signatureContext := range c.signatureContexts {
		if value, ok := signatureContext.paramSpecs[key]; ok {
			return value
		}
	}
	return nil
}

// SetTupleTypeVar records the solved element list of a variadic type
// variable in every signature context.
func (c *TypeVarContext) SetTupleTypeVar(typeVar *TypeVarType, entries []TupleTypeArgument) {
	c.assertUnlocked()
	key := typeVar.NameWithScope()
	for _, signatureContext := range c.signatureContexts {
		signatureContext.tupleVars[key] = entries
	}
}

func (c *TypeVarContext) GetTupleTypeVar(typeVar *TypeVarType) []TupleTypeArgument {
	key := typeVar.NameWithScope()
	for _, signatureContext := range c.signatureContexts {
		if entries, ok := signatureContext.tupleVars[key]; ok {
			return entries
		}
	}
	return nil
}
