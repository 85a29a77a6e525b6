package service

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// audienceEnv is what promotion audience expressions can see.
func audienceEnv(cartTotal float64, cartCount int, loggedIn bool, wishlistCount int) map[string]any {
	return map[string]any{
		"cartTotal":     cartTotal,
		"cartCount":     cartCount,
		"loggedIn":      loggedIn,
		"wishlistCount": wishlistCount,
	}
}

type compiled struct {
	program *exprvm.Program
	err     error
}

// audienceRules compiles audience expressions once and evaluates them per viewer.
type audienceRules struct {
	mu    sync.Mutex
	cache map[string]compiled
}

func newAudienceRules() *audienceRules {
	return &audienceRules{cache: make(map[string]compiled)}
}

// eval reports whether env satisfies expression. An empty expression matches everyone.
func (a *audienceRules) eval(expression string, env map[string]any) (bool, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return true, nil
	}

	program, err := a.load(expression)
	if err != nil {
		return false, err
	}
	out, err := exprlang.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate audience %q: %w", expression, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("audience %q returned %T, want bool", expression, out)
	}
	return ok, nil
}

func (a *audienceRules) load(expression string) (*exprvm.Program, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.cache[expression]; ok {
		return c.program, c.err
	}

	program, err := exprlang.Compile(expression,
		exprlang.Env(audienceEnv(0, 0, false, 0)),
		exprlang.AsBool(),
	)
	if err != nil {
		err = fmt.Errorf("failed to compile audience %q: %w", expression, err)
	}
	a.cache[expression] = compiled{program: program, err: err}
	return program, err
}
