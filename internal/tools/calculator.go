package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

var calcConstants = map[string]any{
	"pi":  math.Pi,
	"e":   math.E,
	"phi": math.Phi,
}

var calcFunctions = map[string]govaluate.ExpressionFunction{
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"exp":   unary(math.Exp),
	"ln":    unary(math.Log),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"log2":  unary(math.Log2),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"round": roundTo,
	"pow": func(args ...any) (any, error) {
		nums, err := floats("pow", 2, args)
		if err != nil {
			return nil, err
		}
		return math.Pow(nums[0], nums[1]), nil
	},
	"min": func(args ...any) (any, error) { return fold("min", args, math.Min) },
	"max": func(args ...any) (any, error) { return fold("max", args, math.Max) },
}

// Evaluate computes a numeric expression. Powers may be written as ** or ^.
func Evaluate(expression string) (string, error) {
	expression = strings.ReplaceAll(strings.TrimSpace(expression), "^", "**")
	if expression == "" {
		return "", errors.New("empty expression")
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, calcFunctions)
	if err != nil {
		return "", fmt.Errorf("invalid expression: %w", err)
	}
	result, err := expr.Evaluate(calcConstants)
	if err != nil {
		return "", err
	}

	switch v := result.(type) {
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return "", errors.New("result is not a finite number")
		}
		return strconv.FormatFloat(v, 'g', 15, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}

type calculateArgs struct {
	Expression string `json:"expression" description:"Mathematical expression to evaluate, e.g. '1000 * (1 + 0.05) ** 3' or 'sqrt(16) + pi'"`
}

// NewCalculateTool returns the calculate tool.
func NewCalculateTool() schema.Tool {
	return NewFunc(string(ToolCalculate),
		"Evaluate a mathematical expression. Supports + - * / % and ** (power), parentheses, the constants pi and e, and the functions sqrt, pow, abs, exp, ln, log10, log2, round, floor, ceil, sin, cos, tan, min and max.",
		func(_ context.Context, a calculateArgs) (string, error) {
			return Evaluate(a.Expression)
		})
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...any) (any, error) {
		nums, err := floats("function", 1, args)
		if err != nil {
			return nil, err
		}
		return fn(nums[0]), nil
	}
}

// roundTo rounds to the nearest integer, or to n decimals when given.
func roundTo(args ...any) (any, error) {
	if len(args) == 1 {
		nums, err := floats("round", 1, args)
		if err != nil {
			return nil, err
		}
		return math.Round(nums[0]), nil
	}
	nums, err := floats("round", 2, args)
	if err != nil {
		return nil, err
	}
	scale := math.Pow(10, math.Trunc(nums[1]))
	return math.Round(nums[0]*scale) / scale, nil
}

func fold(name string, args []any, fn func(a, b float64) float64) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s expects at least one argument", name)
	}
	nums, err := floats(name, len(args), args)
	if err != nil {
		return nil, err
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc = fn(acc, n)
	}
	return acc, nil
}

func floats(name string, want int, args []any) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", name, want, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d is not a number", name, i+1)
		}
		out[i] = f
	}
	return out, nil
}
