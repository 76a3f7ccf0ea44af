package surface

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// mathFunctions is the function table available inside user expressions.
var mathFunctions = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"atan": unary(math.Atan),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		a, aok := args[0].(float64)
		b, bok := args[1].(float64)
		if !aok || !bok {
			return nil, fmt.Errorf("pow expects numeric arguments")
		}
		return math.Pow(a, b), nil
	},
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected numeric argument, got %T", args[0])
		}
		return fn(v), nil
	}
}

// Compile parses a closed-form expression in the single variable x and
// returns a plain evaluator. Parse failures and references to any other
// variable are reported here, before a simulation can start.
func Compile(src string) (func(x float64) float64, error) {
	if src == "" {
		return nil, fmt.Errorf("empty expression")
	}
	eval, err := govaluate.NewEvaluableExpressionWithFunctions(src, mathFunctions)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	for _, v := range eval.Vars() {
		if v != "x" {
			return nil, fmt.Errorf("expression %q: unknown variable %q (only x is allowed)", src, v)
		}
	}
	params := make(map[string]interface{}, 1)
	return func(x float64) float64 {
		params["x"] = x
		out, err := eval.Evaluate(params)
		if err != nil {
			return math.NaN()
		}
		v, ok := out.(float64)
		if !ok {
			return math.NaN()
		}
		return v
	}, nil
}

// Expr is a surface whose height is an arbitrary user expression y(x).
// Derivatives come from central finite differences.
type Expr struct {
	src    string
	height func(float64) float64
}

func NewExpr(src string) (*Expr, error) {
	height, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("surface expression: %w", err)
	}
	return &Expr{src: src, height: height}, nil
}

func (e *Expr) Name() string   { return "expr" }
func (e *Expr) Source() string { return e.src }

func (e *Expr) Height(x float64) float64 {
	return e.height(x)
}

func (e *Expr) Slope(x float64) float64 {
	return (e.height(x+fdStep) - e.height(x-fdStep)) / (2 * fdStep)
}

func (e *Expr) Second(x float64) float64 {
	return (e.height(x+fdStep) - 2*e.height(x) + e.height(x-fdStep)) / (fdStep * fdStep)
}

func (e *Expr) CurvatureRadius(x float64) float64 {
	return radiusFrom(e.Slope(x), e.Second(x))
}
