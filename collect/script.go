package collect

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/witchwood/logger"
)

// collectDispatchScript is appended to every collect script. Scripts define
// on_collect(engine, units).
const collectDispatchScript = `
on_collect(__engine, __units)
`

// ScriptHook runs a tengo on_collect handler for every gathering event. The
// engine map exposes escalate(), damage_witch(n) and log(msg).
type ScriptHook struct {
	mu       sync.Mutex
	name     string
	compiled *tengo.Compiled
	engine   *tengo.ImmutableMap
	log      *logrus.Entry
}

func NewScriptHook(name string, src []byte, escalator Escalator, witch Damageable) (*ScriptHook, error) {
	h := &ScriptHook{
		name: name,
		log:  logger.For("collect_script").WithField("script", name),
	}
	h.engine = h.buildEngine(escalator, witch)
	if err := h.compile(src); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *ScriptHook) compile(src []byte) error {
	full := string(src) + "\n" + collectDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__units", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("collect: compile %s: %w", h.name, err)
	}
	h.compiled = compiled
	return nil
}

func (h *ScriptHook) Name() string {
	return h.name
}

// Reload recompiles the hook from new source. On failure the previous
// program stays active.
func (h *ScriptHook) Reload(src []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.compile(src)
}

func (h *ScriptHook) Collected(units int) {
	if err := h.Run(units); err != nil {
		h.log.WithError(err).Warn("collect script failed")
	}
}

// Run executes on_collect for units.
func (h *ScriptHook) Run(units int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.compiled == nil {
		return fmt.Errorf("collect: %s not compiled", h.name)
	}
	if err := h.compiled.Set("__engine", h.engine); err != nil {
		return err
	}
	if err := h.compiled.Set("__units", units); err != nil {
		return err
	}
	if err := h.compiled.Run(); err != nil {
		return fmt.Errorf("collect: run %s: %w", h.name, err)
	}
	return nil
}

func (h *ScriptHook) buildEngine(escalator Escalator, witch Damageable) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["escalate"] = &tengo.UserFunction{Name: "escalate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if escalator == nil {
			return tengo.FalseValue, nil
		}
		escalator.IncreaseAggression()
		return tengo.TrueValue, nil
	}}

	values["damage_witch"] = &tengo.UserFunction{Name: "damage_witch", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if witch == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		amount, ok := tengo.ToFloat64(args[0])
		if !ok || amount <= 0 {
			return tengo.FalseValue, nil
		}
		witch.TakeDamage(amount)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		h.log.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
