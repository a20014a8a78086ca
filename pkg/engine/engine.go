// Package engine evaluates shape scripts. A script is zygomys Lisp with a
// small set of builtins that declare shapes and composites; evaluating it
// yields a catalog.Catalog.
//
//	(defshape "post" (cylinder :radius 0.5 :height 3))
//	(defshape "lamp" (auto-segments (sphere :radius 0.8 :bottom-clip 0.2)))
//	(defcomposite "lamppost"
//	  (place (shape "post"))
//	  (place (shape "lamp") :at (vec3 0 0 3.2)))
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/shapes/internal/logger"
	"github.com/chazu/shapes/pkg/catalog"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// EvalError is a problem in the script itself: a parse error, a runtime
// error, a rejected shape parameter or a broken catalog reference.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine runs scripts in a fresh sandbox per call. It is safe for concurrent
// use; only the result of the most recent call is delivered.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// NewEngine returns an Engine with the default timeout.
func NewEngine() *Engine {
	return &Engine{timeout: EvalTimeout}
}

// SetTimeout changes the evaluation limit. Non-positive values restore
// EvalTimeout.
func (e *Engine) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = EvalTimeout
	}
	e.mu.Lock()
	e.timeout = d
	e.mu.Unlock()
}

// Evaluate runs source and returns the catalog it declares.
//
//   - success: catalog, nil, nil
//   - script errors: nil, eval errors, nil
//   - timeout, panic or a superseded call: nil, nil, error
func (e *Engine) Evaluate(source string) (*catalog.Catalog, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	limit := e.timeout
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		c, evalErrs, err := evaluate(source)
		ch <- evalResult{catalog: c, errors: evalErrs, err: err}
	}()

	c, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation, limit)
	switch {
	case err != nil:
		logger.Log.Warn("evaluation failed", zap.Uint64("generation", gen), zap.Error(err))
	case len(evalErrs) > 0:
		logger.Log.Debug("script errors", zap.Uint64("generation", gen), zap.Int("errors", len(evalErrs)))
	default:
		logger.Log.Debug("evaluated",
			zap.Uint64("generation", gen),
			zap.Int("entries", c.Len()),
			zap.Duration("elapsed", time.Since(start)))
	}
	return c, evalErrs, err
}

func evaluate(source string) (*catalog.Catalog, []EvalError, error) {
	c := catalog.New()
	if strings.TrimSpace(source) == "" {
		return c, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, c)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if errs := catalog.Errors(catalog.Validate(c)); len(errs) > 0 {
		return nil, lo.Map(errs, func(v catalog.ValidationError, _ int) EvalError {
			return EvalError{Message: v.Error()}
		}), nil
	}
	return c, nil, nil
}

var (
	// "Error on line N: ..." as printed by the zygomys parser and runtime.
	linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	// "line N: ..."
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			detail := strings.TrimSpace(m[2])
			if detail == "" {
				detail = strings.TrimSpace(strings.Replace(msg, m[0], "", 1))
			}
			return []EvalError{{Line: line, Message: detail}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
