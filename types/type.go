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
	"strings"

	"github.com/google/uuid"

	"github.com/tern-lang/tern/common"
)

// TypeCategory discriminates the variants of the type algebra.
type TypeCategory int

const (
	TypeCategoryUnbound TypeCategory = iota
	TypeCategoryUnknown
	TypeCategoryAny
	TypeCategoryNone
	TypeCategoryNever
	TypeCategoryFunction
	TypeCategoryOverloaded
	TypeCategoryClass
	TypeCategoryModule
	TypeCategoryUnion
	TypeCategoryTypeVar
)

// TypeFlags describe how a type is used.
//
// Untyped types such as Any and None are simultaneously an instance and
// instantiable, so both flags may be set.
type TypeFlags uint8

const (
	TypeFlagNone         TypeFlags = 0
	TypeFlagInstantiable TypeFlags = 1 << 0
	TypeFlagInstance     TypeFlags = 1 << 1
)

// TypeCondition is a narrowing predicate attached to a type:
// the type is valid only while the named type variable is bound
// to its constraint with the given index. A list of conditions
// is the conjunction of its entries.
type TypeCondition struct {
	TypeVarName     string
	ConstraintIndex int
}

// TypeAliasInfo records that a type was produced by resolving a
// (possibly generic) type alias. It is carried through substitution
// so that diagnostics can print the alias name instead of its expansion.
type TypeAliasInfo struct {
	Name           string
	FullName       string
	TypeVarScopeID TypeVarScopeID
	TypeParameters []*TypeVarType
	TypeArguments  []Type
}

// Type is the interface implemented by all variants of the algebra.
type Type interface {
	isType()
	Category() TypeCategory
	Flags() TypeFlags
	AliasInfo() *TypeAliasInfo
	Conditions() []TypeCondition
	String() string

	base() *typeBase
	shallowClone() Type
}

// typeBase carries the fields shared by every type variant.
//
// cachedInstance and cachedInstantiable are memoized projections,
// written at most once.
type typeBase struct {
	flags      TypeFlags
	aliasInfo  *TypeAliasInfo
	conditions []TypeCondition

	cachedInstance     Type
	cachedInstantiable Type
}

func (t *typeBase) isType() {}

func (t *typeBase) Flags() TypeFlags {
	return t.flags
}

func (t *typeBase) AliasInfo() *TypeAliasInfo {
	return t.aliasInfo
}

func (t *typeBase) Conditions() []TypeCondition {
	return t.conditions
}

func (t *typeBase) base() *typeBase {
	return t
}

// resetDerived must be called whenever a clone diverges from its original,
// so the clone does not serve the original's memoized projections.
func (t *typeBase) resetDerived() {
	t.cachedInstance = nil
	t.cachedInstantiable = nil
}

// WithAliasInfo returns a copy of the given type with the given
// alias information attached.
func WithAliasInfo(t Type, info *TypeAliasInfo) Type {
	clone := t.shallowClone()
	clone.base().aliasInfo = info
	clone.base().resetDerived()
	return clone
}

// WithFlags returns the given type with the given type flags.
// If the flags already match, the type is returned unchanged.
func WithFlags(t Type, flags TypeFlags) Type {
	if t.Flags() == flags {
		return t
	}
	clone := t.shallowClone()
	clone.base().flags = flags
	clone.base().resetDerived()
	return clone
}

// TypeVarScopeID identifies the scope that binds a type variable,
// e.g. the generic class or function that declared it.
type TypeVarScopeID string

// WildcardTypeVarScopeID is used in a substitution context to indicate
// that type variables of all scopes should be solved.
const WildcardTypeVarScopeID TypeVarScopeID = "*"

// NewTypeVarScopeID allocates a fresh scope ID for synthesized
// type variables.
func NewTypeVarScopeID() TypeVarScopeID {
	return TypeVarScopeID(uuid.NewString())
}

// UnboundType

// UnboundType is the type of a name before any assignment is seen.
type UnboundType struct {
	typeBase
}

var _ Type = &UnboundType{}

func NewUnboundType() *UnboundType {
	return &UnboundType{
		typeBase: typeBase{
			flags: TypeFlagInstance | TypeFlagInstantiable,
		},
	}
}

func (t *UnboundType) Category() TypeCategory {
	return TypeCategoryUnbound
}

func (t *UnboundType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *UnboundType) String() string {
	return "Unbound"
}

// UnknownType

// UnknownType is an implicit form of Any: the type could not be determined.
// The distinction from Any (an explicit, user-declared widening) is
// preserved by every operation of the algebra.
type UnknownType struct {
	typeBase
}

var _ Type = &UnknownType{}

func NewUnknownType() *UnknownType {
	return &UnknownType{
		typeBase: typeBase{
			flags: TypeFlagInstance | TypeFlagInstantiable,
		},
	}
}

func (t *UnknownType) Category() TypeCategory {
	return TypeCategoryUnknown
}

func (t *UnknownType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *UnknownType) String() string {
	return "Unknown"
}

// AnyType

// AnyType is the explicit gradual type.
type AnyType struct {
	typeBase
}

var _ Type = &AnyType{}

func NewAnyType() *AnyType {
	return &AnyType{
		typeBase: typeBase{
			flags: TypeFlagInstance | TypeFlagInstantiable,
		},
	}
}

func (t *AnyType) Category() TypeCategory {
	return TypeCategoryAny
}

func (t *AnyType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *AnyType) String() string {
	return "Any"
}

// NoneType

// NoneType is the unit type. Like Any, it is both an instance
// and instantiable.
type NoneType struct {
	typeBase
}

var _ Type = &NoneType{}

func NewNoneType() *NoneType {
	return &NoneType{
		typeBase: typeBase{
			flags: TypeFlagInstance | TypeFlagInstantiable,
		},
	}
}

func (t *NoneType) Category() TypeCategory {
	return TypeCategoryNone
}

func (t *NoneType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *NoneType) String() string {
	return "None"
}

// NeverType

// NeverType is the bottom type. It absorbs into the empty union.
type NeverType struct {
	typeBase
}

var _ Type = &NeverType{}

func NewNeverType() *NeverType {
	return &NeverType{
		typeBase: typeBase{
			flags: TypeFlagInstance | TypeFlagInstantiable,
		},
	}
}

func (t *NeverType) Category() TypeCategory {
	return TypeCategoryNever
}

func (t *NeverType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *NeverType) String() string {
	return "Never"
}

// ModuleType

// ModuleType is the type of an imported module.
type ModuleType struct {
	typeBase
	ModuleName string
	Fields     *SymbolTable
}

var _ Type = &ModuleType{}

func NewModuleType(name string, fields *SymbolTable) *ModuleType {
	if fields == nil {
		fields = NewSymbolTable()
	}
	return &ModuleType{
		typeBase: typeBase{
			flags: TypeFlagInstance,
		},
		ModuleName: name,
		Fields:     fields,
	}
}

func (t *ModuleType) Category() TypeCategory {
	return TypeCategoryModule
}

func (t *ModuleType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *ModuleType) String() string {
	return fmt.Sprintf("Module(%q)", t.ModuleName)
}

// ClassType

// ClassFlags describe the kind of a class declaration.
type ClassFlags uint16

const (
	ClassFlagNone           ClassFlags = 0
	ClassFlagProtocol       ClassFlags = 1 << 0
	ClassFlagTypedDict      ClassFlags = 1 << 1
	ClassFlagDataClass      ClassFlags = 1 << 2
	ClassFlagPseudoGeneric  ClassFlags = 1 << 3
	ClassFlagSpecialBuiltIn ClassFlags = 1 << 4
	ClassFlagTupleClass     ClassFlags = 1 << 5
)

// TupleTypeArgument is one structural element type of a tuple class.
// At most one entry of a tuple class is unbounded (or an unpacked
// variadic type variable); all other entries are fixed-length.
type TupleTypeArgument struct {
	Type        Type
	IsUnbounded bool
}

// ClassDetails is the per-declaration record shared by every
// specialization of a class. Two ClassType values describe the same
// generic class exactly when they share a ClassDetails pointer.
type ClassDetails struct {
	Name       string
	ModuleName string
	FullName   string

	Flags          ClassFlags
	TypeParameters []*TypeVarType
	BaseClasses    []Type

	// MRO is computed by ComputeMROLinearization and populated once.
	MRO []Type

	Fields *SymbolTable

	EffectiveMetaclass Type
}

// ClassType is a reference to a class declaration, optionally specialized
// with type arguments. The Instantiable flag means the value is the class
// object itself; the Instance flag means a value of the class.
type ClassType struct {
	typeBase
	Details *ClassDetails

	// TypeArguments is nil for an unspecialized reference to a
	// generic class. When present, its length equals the length
	// of Details.TypeParameters.
	TypeArguments []Type

	// IsTypeArgumentExplicit records whether the type arguments were
	// written in source rather than inferred.
	IsTypeArgumentExplicit bool

	// TupleTypeArguments captures the structural element types
	// of a tuple class.
	TupleTypeArguments []TupleTypeArgument

	// IsUnpacked marks a tuple class used as an unpacked variadic.
	IsUnpacked bool

	// LiteralValue is the compile-time value of a literal type,
	// e.g. int64(3) for Literal[3]. A nil value means the class
	// is not a literal type.
	LiteralValue any
}

var _ Type = &ClassType{}

func NewClassType(
	name string,
	moduleName string,
	flags ClassFlags,
	typeParameters []*TypeVarType,
) *ClassType {
	fullName := name
	if moduleName != "" {
		fullName = moduleName + "." + name
	}
	return &ClassType{
		typeBase: typeBase{
			flags: TypeFlagInstantiable,
		},
		Details: &ClassDetails{
			Name:           name,
			ModuleName:     moduleName,
			FullName:       fullName,
			Flags:          flags,
			TypeParameters: typeParameters,
			Fields:         NewSymbolTable(),
		},
	}
}

func (t *ClassType) Category() TypeCategory {
	return TypeCategoryClass
}

func (t *ClassType) shallowClone() Type {
	clone := *t
	return &clone
}

// SameGenericClass returns true if both class references originate
// from the same class declaration, ignoring specialization.
func (t *ClassType) SameGenericClass(other *ClassType) bool {
	return t.Details == other.Details
}

// IsBuiltIn returns true if the class is the builtin class
// with the given name.
func (t *ClassType) IsBuiltIn(name string) bool {
	return t.Details.ModuleName == "builtins" &&
		t.Details.Name == name
}

func (t *ClassType) IsProtocol() bool {
	return t.Details.Flags&ClassFlagProtocol != 0
}

func (t *ClassType) IsTypedDict() bool {
	return t.Details.Flags&ClassFlagTypedDict != 0
}

func (t *ClassType) IsDataClass() bool {
	return t.Details.Flags&ClassFlagDataClass != 0
}

func (t *ClassType) IsPseudoGeneric() bool {
	return t.Details.Flags&ClassFlagPseudoGeneric != 0
}

func (t *ClassType) IsSpecialBuiltIn() bool {
	return t.Details.Flags&ClassFlagSpecialBuiltIn != 0
}

func (t *ClassType) IsTupleClass() bool {
	return t.Details.Flags&ClassFlagTupleClass != 0
}

func (t *ClassType) IsLiteral() bool {
	return t.LiteralValue != nil
}

// CloneForSpecialization returns a copy of the class reference with
// the given type arguments applied.
func (t *ClassType) CloneForSpecialization(
	typeArguments []Type,
	isTypeArgumentExplicit bool,
) *ClassType {
	clone := *t
	clone.TypeArguments = typeArguments
	clone.IsTypeArgumentExplicit = isTypeArgumentExplicit
	clone.resetDerived()
	return &clone
}

// CloneForTupleSpecialization returns a copy of a tuple class with both
// the flattened type argument and the structural tuple arguments applied.
func (t *ClassType) CloneForTupleSpecialization(
	typeArguments []Type,
	tupleTypeArguments []TupleTypeArgument,
	isTypeArgumentExplicit bool,
) *ClassType {
	clone := *t
	clone.TypeArguments = typeArguments
	clone.TupleTypeArguments = tupleTypeArguments
	clone.IsTypeArgumentExplicit = isTypeArgumentExplicit
	clone.resetDerived()
	return &clone
}

// CloneForUnpacked returns a copy of a tuple class with the
// unpacked marker set.
func (t *ClassType) CloneForUnpacked(isUnpacked bool) *ClassType {
	clone := *t
	clone.IsUnpacked = isUnpacked
	clone.resetDerived()
	return &clone
}

// CloneForLiteral returns a copy of the class reference representing
// a literal type with the given value.
func (t *ClassType) CloneForLiteral(value any) *ClassType {
	clone := *t
	clone.LiteralValue = value
	clone.resetDerived()
	return &clone
}

// CloneWithoutLiteral returns the class reference with any literal
// value stripped.
func (t *ClassType) CloneWithoutLiteral() *ClassType {
	if t.LiteralValue == nil {
		return t
	}
	clone := *t
	clone.LiteralValue = nil
	clone.resetDerived()
	return &clone
}

func (t *ClassType) String() string {
	var sb strings.Builder

	isInstance := t.flags&TypeFlagInstance != 0
	if !isInstance {
		sb.WriteString("type[")
	}

	if t.LiteralValue != nil {
		switch value := t.LiteralValue.(type) {
		case string:
			sb.WriteString(fmt.Sprintf("Literal[%q]", value))
		default:
			sb.WriteString(fmt.Sprintf("Literal[%v]", value))
		}
	} else {
		sb.WriteString(t.Details.Name)

		if t.IsTupleClass() && t.TupleTypeArguments != nil {
			sb.WriteByte('[')
			if len(t.TupleTypeArguments) == 0 {
				sb.WriteString("()")
			}
			for i, arg := range t.TupleTypeArguments {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(arg.Type.String())
				if arg.IsUnbounded {
					sb.WriteString(", ...")
				}
			}
			sb.WriteByte(']')
		} else if t.TypeArguments != nil {
			sb.WriteByte('[')
			for i, arg := range t.TypeArguments {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(arg.String())
			}
			sb.WriteByte(']')
		}
	}

	if !isInstance {
		sb.WriteString("]")
	}

	return sb.String()
}

// FunctionType

// FunctionTypeFlags describe properties of a function signature.
type FunctionTypeFlags uint16

const (
	FunctionFlagNone FunctionTypeFlags = 0

	// FunctionFlagParamSpecValue marks a function that stands for
	// the value of a parameter specification, not a callable.
	FunctionFlagParamSpecValue FunctionTypeFlags = 1 << 0

	// FunctionFlagSkipArgsKwargsCheck disables compatibility checking
	// of the trailing *args/**kwargs pair.
	FunctionFlagSkipArgsKwargsCheck FunctionTypeFlags = 1 << 1

	FunctionFlagSynthesizedMethod FunctionTypeFlags = 1 << 2
	FunctionFlagOverloaded        FunctionTypeFlags = 1 << 3
	FunctionFlagStaticMethod      FunctionTypeFlags = 1 << 4
	FunctionFlagClassMethod       FunctionTypeFlags = 1 << 5
)

// Parameter is a single function parameter.
//
// A ParameterCategorySimple parameter with an empty name is a separator
// (positional-only or keyword-only marker).
type Parameter struct {
	Category        common.ParameterCategory
	Name            string
	Type            Type
	HasDefault      bool
	DefaultType     Type
	HasDeclaredType bool
}

// IsSeparator reports whether the parameter is a separator: a
// ParameterCategorySimple parameter with an empty name.
func (p Parameter) IsSeparator() bool {
	return p.Category == common.ParameterCategorySimple && p.Name == ""
}

// FunctionDetails is the per-declaration record of a function,
// shared by all of its specializations.
type FunctionDetails struct {
	Name       string
	ModuleName string
	Flags      FunctionTypeFlags

	Parameters         []Parameter
	DeclaredReturnType Type

	// ParamSpec is the parameter specification bound at the tail of
	// the signature, e.g. the P of def f(x: int, *args: P.args,
	// **kwargs: P.kwargs).
	ParamSpec *TypeVarType

	TypeVarScopeID TypeVarScopeID
}

// SpecializedFunctionTypes is the substitution overlay of a function:
// parallel arrays of substituted parameter types, default argument
// types, and return type. ParameterTypes always has the same length
// as the declaration's parameter list.
type SpecializedFunctionTypes struct {
	ParameterTypes        []Type
	ParameterDefaultTypes []Type
	ReturnType            Type
}

// FunctionType is a callable signature, possibly carrying a
// specialization overlay.
type FunctionType struct {
	typeBase
	Details *FunctionDetails

	Specialized *SpecializedFunctionTypes

	// InferredReturnType is the return type produced by inference
	// when no return type was declared.
	InferredReturnType Type
}

var _ Type = &FunctionType{}

func NewFunctionType(name string, flags FunctionTypeFlags) *FunctionType {
	return &FunctionType{
		typeBase: typeBase{
			flags: TypeFlagInstance,
		},
		Details: &FunctionDetails{
			Name:  name,
			Flags: flags,
		},
	}
}

func (t *FunctionType) Category() TypeCategory {
	return TypeCategoryFunction
}

func (t *FunctionType) shallowClone() Type {
	clone := *t
	return &clone
}

// AddParameter appends a parameter to the function declaration.
func (t *FunctionType) AddParameter(parameter Parameter) {
	t.Details.Parameters = append(t.Details.Parameters, parameter)
}

// EffectiveParameterType returns the substituted type of the i-th
// parameter if a specialization overlay is present, and the declared
// type otherwise.
func (t *FunctionType) EffectiveParameterType(i int) Type {
	if t.Specialized != nil && i < len(t.Specialized.ParameterTypes) {
		return t.Specialized.ParameterTypes[i]
	}
	return t.Details.Parameters[i].Type
}

// EffectiveParameterDefaultType returns the substituted default argument
// type of the i-th parameter if a specialization overlay is present, and
// the declared default type otherwise.
func (t *FunctionType) EffectiveParameterDefaultType(i int) Type {
	if t.Specialized != nil &&
		t.Specialized.ParameterDefaultTypes != nil &&
		i < len(t.Specialized.ParameterDefaultTypes) {

		return t.Specialized.ParameterDefaultTypes[i]
	}
	return t.Details.Parameters[i].DefaultType
}

// EffectiveReturnType returns the substituted return type if a
// specialization overlay is present, the declared return type if one
// was written, and the inferred return type otherwise.
func (t *FunctionType) EffectiveReturnType() Type {
	if t.Specialized != nil && t.Specialized.ReturnType != nil {
		return t.Specialized.ReturnType
	}
	if t.Details.DeclaredReturnType != nil {
		return t.Details.DeclaredReturnType
	}
	return t.InferredReturnType
}

// CloneWithNewDetails returns a copy of the function sharing nothing
// with the original declaration record. Used when a transformation
// needs to rewrite the parameter list itself.
func (t *FunctionType) CloneWithNewDetails() *FunctionType {
	clone := *t
	details := *t.Details
	details.Parameters = append([]Parameter(nil), t.Details.Parameters...)
	clone.Details = &details
	clone.resetDerived()
	return &clone
}

// CloneForSpecialization returns a copy of the function with the given
// specialization overlay attached.
func (t *FunctionType) CloneForSpecialization(specialized *SpecializedFunctionTypes) *FunctionType {
	clone := *t
	clone.Specialized = specialized
	clone.resetDerived()
	return &clone
}

func (t *FunctionType) String() string {
	var sb strings.Builder
	sb.WriteByte('(')

	for i, parameter := range t.Details.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}

		switch parameter.Category {
		case common.ParameterCategoryVarArgList:
			sb.WriteByte('*')
		case common.ParameterCategoryVarArgDictionary:
			sb.WriteString("**")
		}

		if parameter.IsSeparator() {
			sb.WriteString("*")
			continue
		}

		sb.WriteString(parameter.Name)

		parameterType := t.EffectiveParameterType(i)
		if parameterType != nil {
			sb.WriteString(": ")
			sb.WriteString(parameterType.String())
		}

		if parameter.HasDefault {
			sb.WriteString(" = ...")
		}
	}

	if t.Details.ParamSpec != nil {
		if len(t.Details.Parameters) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("**")
		sb.WriteString(t.Details.ParamSpec.Details.Name)
	}

	sb.WriteString(") -> ")

	returnType := t.EffectiveReturnType()
	if returnType != nil {
		sb.WriteString(returnType.String())
	} else {
		sb.WriteString("Unknown")
	}

	return sb.String()
}

// OverloadedFunctionType

// OverloadedFunctionType is an ordered sequence of function overloads.
type OverloadedFunctionType struct {
	typeBase
	Overloads []*FunctionType
}

var _ Type = &OverloadedFunctionType{}

func NewOverloadedFunctionType(overloads []*FunctionType) *OverloadedFunctionType {
	return &OverloadedFunctionType{
		typeBase: typeBase{
			flags: TypeFlagInstance,
		},
		Overloads: overloads,
	}
}

func (t *OverloadedFunctionType) Category() TypeCategory {
	return TypeCategoryOverloaded
}

func (t *OverloadedFunctionType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *OverloadedFunctionType) String() string {
	var sb strings.Builder
	sb.WriteString("Overload[")
	for i, overload := range t.Overloads {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(overload.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// UnionType

// UnionType is an ordered, duplicate-free sequence of at least two
// subtypes. Subtypes are never themselves unions.
type UnionType struct {
	typeBase
	Subtypes []Type

	// IncludesRecursiveAlias is a pruning hint: at least one subtype
	// transitively contains a recursive type alias placeholder.
	IncludesRecursiveAlias bool
}

var _ Type = &UnionType{}

func (t *UnionType) Category() TypeCategory {
	return TypeCategoryUnion
}

func (t *UnionType) shallowClone() Type {
	clone := *t
	return &clone
}

func (t *UnionType) String() string {
	parts := make([]string, 0, len(t.Subtypes))
	for _, subtype := range t.Subtypes {
		parts = append(parts, subtype.String())
	}
	return strings.Join(parts, " | ")
}

// TypeVarType

// TypeVarKind discriminates plain type variables, parameter
// specifications, and variadic type variables.
type TypeVarKind int

const (
	TypeVarKindPlain TypeVarKind = iota
	TypeVarKindParamSpec
	TypeVarKindVariadic
)

// ParamSpecAccess marks a use of P.args or P.kwargs.
type ParamSpecAccess int

const (
	ParamSpecAccessNone ParamSpecAccess = iota
	ParamSpecAccessArgs
	ParamSpecAccessKwargs
)

// TypeVarDetails is the per-declaration record of a type variable.
type TypeVarDetails struct {
	Name     string
	Kind     TypeVarKind
	Variance common.Variance

	BoundType   Type
	Constraints []Type
	DefaultType Type

	IsSynthesized     bool
	IsSynthesizedSelf bool

	// RecursiveAliasName is set when the type variable is a placeholder
	// for a recursive type alias; BoundType then holds the aliased type.
	RecursiveAliasName    string
	RecursiveAliasScopeID TypeVarScopeID
}

// TypeVarType is a reference to a type variable. Identity is the pair
// of declared name and binding scope.
type TypeVarType struct {
	typeBase
	Details *TypeVarDetails

	ScopeID   TypeVarScopeID
	ScopeName string

	ParamSpecAccess ParamSpecAccess

	IsVariadicUnpacked bool
	IsVariadicInUnion  bool
}

var _ Type = &TypeVarType{}

func NewTypeVarType(name string, kind TypeVarKind) *TypeVarType {
	return &TypeVarType{
		typeBase: typeBase{
			flags: TypeFlagInstance,
		},
		Details: &TypeVarDetails{
			Name: name,
			Kind: kind,
		},
	}
}

func (t *TypeVarType) Category() TypeCategory {
	return TypeCategoryTypeVar
}

func (t *TypeVarType) shallowClone() Type {
	clone := *t
	return &clone
}

// NameWithScope is the identity key of the type variable.
func (t *TypeVarType) NameWithScope() string {
	return MakeTypeVarNameWithScope(t.Details.Name, t.ScopeID)
}

func MakeTypeVarNameWithScope(name string, scopeID TypeVarScopeID) string {
	if scopeID == "" {
		return name
	}
	return name + "." + string(scopeID)
}

// IsRecursiveAlias returns true if the type variable is a placeholder
// for a recursive type alias.
func (t *TypeVarType) IsRecursiveAlias() bool {
	return t.Details.RecursiveAliasName != ""
}

// CloneForScopeBinding returns a copy of the type variable bound
// to the given scope.
func (t *TypeVarType) CloneForScopeBinding(scopeID TypeVarScopeID, scopeName string) *TypeVarType {
	clone := *t
	clone.ScopeID = scopeID
	clone.ScopeName = scopeName
	clone.resetDerived()
	return &clone
}

// CloneForParamSpecAccess returns a copy of a parameter specification
// referencing its .args or .kwargs member.
func (t *TypeVarType) CloneForParamSpecAccess(access ParamSpecAccess) *TypeVarType {
	clone := *t
	clone.ParamSpecAccess = access
	clone.resetDerived()
	return &clone
}

// CloneForUnpacked returns a copy of a variadic type variable with the
// unpacked markers set.
func (t *TypeVarType) CloneForUnpacked(inUnion bool) *TypeVarType {
	clone := *t
	clone.IsVariadicUnpacked = true
	clone.IsVariadicInUnion = inUnion
	clone.resetDerived()
	return &clone
}

func (t *TypeVarType) String() string {
	switch t.ParamSpecAccess {
	case ParamSpecAccessArgs:
		return t.Details.Name + ".args"
	case ParamSpecAccessKwargs:
		return t.Details.Name + ".kwargs"
	}

	if t.Details.Kind == TypeVarKindVariadic && t.IsVariadicUnpacked {
		return "*" + t.Details.Name
	}

	return t.Details.Name
}
