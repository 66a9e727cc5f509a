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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tern-lang/tern/errors"
	"github.com/tern-lang/tern/test_utils"
)

func TestMROLinearizationError(t *testing.T) {

	t.Parallel()

	classX := newTestClass("X", nil)
	classY := newTestClass("Y", nil)
	classB := newTestClass("B", nil, classX, classY)
	classC := newTestClass("C", nil, classY, classX)

	classD := NewClassType("D", "test", ClassFlagNone, nil)
	classD.Details.BaseClasses = []Type{classB, classC}
	assert.False(t, ComputeMROLinearization(classD))

	err := MROLinearizationError{Class: classD}
	test_utils.RequireError(t, err)
	assert.True(t, errors.IsUserError(err))

	assert.Equal(t,
		"cannot create a consistent method resolution order for class `D`",
		err.Error(),
	)
	assert.Equal(t,
		"base classes `B`, `C` are ordered inconsistently with their own inheritance hierarchies",
		err.SecondaryError(),
	)
}

func TestUnknownMemberError(t *testing.T) {

	t.Parallel()

	intInstance := instanceOf(newIntClass())

	class := newTestClass("Account", nil)
	class.Details.Fields.Set("balance", newTypedVariableSymbol(intInstance))
	class.Details.Fields.Set("owner", newTypedVariableSymbol(intInstance))

	t.Run("suggests the closest member", func(t *testing.T) {
		t.Parallel()

		err := UnknownMemberError{Class: class, Name: "balanse"}
		test_utils.RequireError(t, err)
		assert.Equal(t, "class `Account` has no member `balanse`", err.Error())
		assert.Equal(t, "did you mean `balance`?", err.SecondaryError())
	})

	t.Run("no suggestion for distant names", func(t *testing.T) {
		t.Parallel()

		err := UnknownMemberError{Class: class, Name: "xy"}
		assert.Equal(t, "unknown member", err.SecondaryError())
	})

	t.Run("inherited members are candidates", func(t *testing.T) {
		t.Parallel()

		derived := newTestClass("Savings", nil, class)

		err := UnknownMemberError{Class: derived, Name: "owners"}
		assert.Equal(t, "did you mean `owner`?", err.SecondaryError())
	})
}

func TestRenderError(t *testing.T) {

	t.Parallel()

	class := newTestClass("Account", nil)

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		err := UnknownMemberError{Class: class, Name: "nope"}
		assert.Equal(t,
			"error: class `Account` has no member `nope`\nnote: unknown member",
			RenderError(err, false),
		)
	})

	t.Run("no note without a secondary message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "error: boom", RenderError(fmt.Errorf("boom"), false))
	})

	t.Run("colored output carries escape codes", func(t *testing.T) {
		t.Parallel()

		err := UnknownMemberError{Class: class, Name: "nope"}
		rendered := RenderError(err, true)
		assert.Contains(t, rendered, "\x1b[")
		assert.True(t, strings.HasPrefix(rendered, "error: "))
	})
}
