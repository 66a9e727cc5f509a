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

// Declaration records one declaration site of a symbol,
// as produced by the binder.
type Declaration struct {
	Kind              common.DeclarationKind
	DeclaredType      Type
	HasTypeAnnotation bool
	ModuleName        string
}

// Symbol is a named entry in a scope: a variable, function, class,
// type alias, etc. A symbol may have multiple declarations
// (e.g. a variable assigned in several branches).
type Symbol struct {
	Declarations      []Declaration
	IsInstanceMember  bool
	IsClassMember     bool
	IsClassVar        bool
	IsInitVar         bool
	IsExternallyHidden bool
	synthesizedType   Type
}

func NewSymbol(declarations ...Declaration) *Symbol {
	return &Symbol{
		Declarations: declarations,
	}
}

// NewSymbolWithType creates a symbol backed by a synthesized type
// rather than source declarations.
func NewSymbolWithType(kind common.DeclarationKind, ty Type) *Symbol {
	return &Symbol{
		Declarations: []Declaration{
			{
				Kind:              kind,
				DeclaredType:      ty,
				HasTypeAnnotation: true,
			},
		},
		synthesizedType: ty,
	}
}

func (s *Symbol) AddDeclaration(declaration Declaration) {
	s.Declarations = append(s.Declarations, declaration)
}

// HasTypedDeclarations reports whether any declaration of the symbol
// carries an explicit type annotation.
func (s *Symbol) HasTypedDeclarations() bool {
	for _, declaration := range s.Declarations {
		if declaration.HasTypeAnnotation {
			return true
		}
	}

	return false
}

// DeclaredType returns the declared type of the symbol:
// the type of the last declaration that has one.
// Returns nil if no declaration has a declared type.
func (s *Symbol) DeclaredType() Type {
	if s.synthesizedType != nil {
		return s.synthesizedType
	}

	for i := len(s.Declarations) - 1; i >= 0; i-- {
		declaration := s.Declarations[i]
		if declaration.DeclaredType != nil {
			return declaration.DeclaredType
		}
	}

	return nil
}

// TypedDeclarations returns the declarations of the symbol
// that carry an explicit type annotation.
func (s *Symbol) TypedDeclarations() []Declaration {
	var typed []Declaration
	for _, declaration := range s.Declarations {
		if declaration.HasTypeAnnotation {
			typed = append(typed, declaration)
		}
	}

	return typed
}

// SymbolTable is an insertion-ordered mapping from names to symbols.
// Iteration order is the order in which names were first set.
type SymbolTable struct {
	names   []string
	symbols map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: map[string]*Symbol{},
	}
}

func (t *SymbolTable) Set(name string, symbol *Symbol) {
	if _, ok := t.symbols[name]; !ok {
		t.names = append(t.names, name)
	}
	t.symbols[name] = symbol
}

func (t *SymbolTable) Get(name string) (*Symbol, bool) {
	symbol, ok := t.symbols[name]
	return symbol, ok
}

func (t *SymbolTable) Contains(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

func (t *SymbolTable) Len() int {
	return len(t.names)
}

// Names returns the symbol names in insertion order.
// The returned slice must not be modified.
func (t *SymbolTable) Names() []string {
	return t.names
}

// ForEach calls f for each name/symbol pair in insertion order.
// Iteration stops if f returns false.
func (t *SymbolTable) ForEach(f func(name string, symbol *Symbol) bool) {
	for _, name := range t.names {
		if !f(name, t.symbols[name]) {
			return
		}
	}
}
