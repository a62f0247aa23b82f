package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lennart-voss/mpy8/internal/ast"
)

func TestParseAssignment(t *testing.T) {
	program, err := Parse("v0 = 10\n")
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)

	stmt := program.Statements[0]
	require.Equal(t, ast.Assign, stmt.Kind)
	require.Equal(t, "v0", stmt.AssignTarget)
	require.Equal(t, ast.ExprNumber, stmt.AssignValue.Kind)
	require.EqualValues(t, 10, stmt.AssignValue.Number)
}

func TestParseClearScreen(t *testing.T) {
	program, err := Parse("clear()\n")
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)
	require.Equal(t, ast.ClearScreen, program.Statements[0].Kind)
}

func TestParsePrint(t *testing.T) {
	program, err := Parse("print(v0, v1, 'A')\n")
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)

	stmt := program.Statements[0]
	require.Equal(t, ast.Print, stmt.Kind)
	require.Equal(t, ast.ExprVariable, stmt.PrintX.Kind)
	require.Equal(t, "v0", stmt.PrintX.Variable)
	require.Equal(t, "v1", stmt.PrintY.Variable)
	require.Equal(t, 'A', stmt.PrintChar)
}

func TestParseWhileLoop(t *testing.T) {
	src := "v0 = 0\nwhile v0 != 5:\n    v0 = v0 + 1\n"
	program, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, program.Statements, 2)

	loop := program.Statements[1]
	require.Equal(t, ast.While, loop.Kind)
	require.Equal(t, ast.CondNotEqual, loop.Condition.Kind)
	require.Len(t, loop.Then, 1)
	require.Equal(t, ast.Assign, loop.Then[0].Kind)
}

func TestParseForRangeSingleArgumentDesugarsToZeroStart(t *testing.T) {
	src := "for v1 in range(3):\n    clear()\n"
	program, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)

	loop := program.Statements[0]
	require.Equal(t, ast.For, loop.Kind)
	require.Equal(t, "v1", loop.ForVariable)
	require.Equal(t, ast.ExprNumber, loop.ForStart.Kind)
	require.EqualValues(t, 0, loop.ForStart.Number)
	require.EqualValues(t, 3, loop.ForEnd.Number)
	require.Len(t, loop.Then, 1)
}

func TestParseForRangeTwoArguments(t *testing.T) {
	src := "for v1 in range(2, 5):\n    clear()\n"
	program, err := Parse(src)
	require.NoError(t, err)

	loop := program.Statements[0]
	require.EqualValues(t, 2, loop.ForStart.Number)
	require.EqualValues(t, 5, loop.ForEnd.Number)
}

func TestParsePassIsANoOp(t *testing.T) {
	program, err := Parse("pass\n")
	require.NoError(t, err)
	require.Empty(t, program.Statements)
}

func TestParseUnexpectedTokenAfterIdentifierIsSyntaxError(t *testing.T) {
	_, err := Parse("v0 10\n")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestParseUnknownFunctionIsSyntaxError(t *testing.T) {
	_, err := Parse("frobnicate()\n")
	if err == nil {
		t.Fatal("expected a syntax error for an unknown function")
	}
}

func TestParseBlockTerminatesOnWhileKeywordLookahead(t *testing.T) {
	src := "while True:\n    v0 = 1\nwhile v0 == 1:\n    v0 = 2\n"
	program, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, program.Statements, 2)
	require.Len(t, program.Statements[0].Then, 1)
	require.Len(t, program.Statements[1].Then, 1)
}
