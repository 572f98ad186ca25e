// Package calculator provides arithmetic tools. Every operation is a pure
// function of its operands; a result that is not a finite number is reported
// as an invalid request instead of being returned.
package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/germanamz/toolservers/pkg/tools/toolbox"
)

const (
	// Name identifies the calculator server on initialize.
	Name = "calculator"
	// Instructions are advertised to clients on initialize.
	Instructions = "A simple calculator: add, subtract, multiply, divide, modulo, power and sqrt over numbers."
)

// ErrDivisionByZero is returned by Divide and Modulo for a zero divisor.
var ErrDivisionByZero = toolbox.InvalidRequest("division by zero")

const pairSchema = `{"type":"object","properties":{"a":{"type":"number","description":"%s"},"b":{"type":"number","description":"%s"}},"required":["a","b"]}`

// Tools returns a ToolBox with the calculator tools registered. Options are
// passed to toolbox.New.
func Tools(opts ...toolbox.Option) *toolbox.ToolBox {
	tb := toolbox.New(opts...)

	tb.Register(
		pairTool("add", "Add two numbers", "First number", "Second number", Add),
		pairTool("subtract", "Subtract b from a", "First number", "Second number", Subtract),
		pairTool("multiply", "Multiply two numbers", "First number", "Second number", Multiply),
		pairTool("divide", "Divide a by b", "First number (dividend)", "Second number (divisor)", Divide),
		pairTool("modulo", "Remainder of a divided by b", "First number (dividend)", "Second number (divisor)", Modulo),
		// Aliases kept for clients built against the sum/sub tool names.
		pairTool("sum", "Calculate the sum of two numbers", "First number", "Second number", Add),
		pairTool("sub", "Calculate the difference of two numbers", "First number", "Second number", Subtract),
		toolbox.Tool{
			Name:        "power",
			Description: "Raise base to the power of exponent",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"base":{"type":"number","description":"Base"},"exponent":{"type":"number","description":"Exponent"}},"required":["base","exponent"]}`),
			Handler:     handlePower,
		},
		toolbox.Tool{
			Name:        "sqrt",
			Description: "Square root of a non-negative number",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"x":{"type":"number","description":"Radicand"}},"required":["x"]}`),
			Handler:     handleSqrt,
		},
	)

	return tb
}

// --- operations ---

// Add returns a + b.
func Add(a, b float64) (float64, error) { return finite(a + b) }

// Subtract returns a - b.
func Subtract(a, b float64) (float64, error) { return finite(a - b) }

// Multiply returns a * b.
func Multiply(a, b float64) (float64, error) { return finite(a * b) }

// Divide returns a / b, or ErrDivisionByZero when b is zero.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}

	return finite(a / b)
}

// Modulo returns the remainder of a / b with the sign of a, or
// ErrDivisionByZero when b is zero.
func Modulo(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}

	return finite(math.Mod(a, b))
}

// Power returns base**exponent.
func Power(base, exponent float64) (float64, error) {
	return finite(math.Pow(base, exponent))
}

// Sqrt returns the square root of x.
func Sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, toolbox.InvalidRequest("square root of negative number %v", x)
	}

	return finite(math.Sqrt(x))
}

func finite(v float64) (float64, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, toolbox.InvalidRequest("result is not a finite number")
	}

	return v, nil
}

// --- input types ---

type pairInput struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type powerInput struct {
	Base     float64 `json:"base"`
	Exponent float64 `json:"exponent"`
}

type sqrtInput struct {
	X float64 `json:"x"`
}

type output struct {
	Result float64 `json:"result"`
}

// --- handlers ---

func pairTool(name, description, aDesc, bDesc string, op func(a, b float64) (float64, error)) toolbox.Tool {
	return toolbox.Tool{
		Name:        name,
		Description: description,
		InputSchema: json.RawMessage(fmt.Sprintf(pairSchema, aDesc, bDesc)),
		Handler: func(_ context.Context, input json.RawMessage) (string, error) {
			var in pairInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", toolbox.InvalidRequest("%s: invalid input: %v", name, err)
			}

			return result(op(in.A, in.B))
		},
	}
}

func handlePower(_ context.Context, input json.RawMessage) (string, error) {
	var in powerInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", toolbox.InvalidRequest("power: invalid input: %v", err)
	}

	return result(Power(in.Base, in.Exponent))
}

func handleSqrt(_ context.Context, input json.RawMessage) (string, error) {
	var in sqrtInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", toolbox.InvalidRequest("sqrt: invalid input: %v", err)
	}

	return result(Sqrt(in.X))
}

func result(v float64, err error) (string, error) {
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(output{Result: v})
	if err != nil {
		return "", toolbox.Internal("encode result: %v", err)
	}

	return string(data), nil
}
