package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// DefaultScriptTimeout bounds a single initializer run
const DefaultScriptTimeout = 500 * time.Millisecond

// ScriptInitializer runs a JavaScript snippet with three globals:
// notify(title, message), status(text) and setting(key).
type ScriptInitializer struct {
	appID   string
	program *goja.Program
	timeout time.Duration
}

// CompileScript compiles src for appID
func CompileScript(appID, src string) (*ScriptInitializer, error) {
	program, err := goja.Compile(appID+".init.js", src, true)
	if err != nil {
		return nil, fmt.Errorf("compile init script for %s: %w", appID, err)
	}
	return &ScriptInitializer{appID: appID, program: program, timeout: DefaultScriptTimeout}, nil
}

// Init runs the script in a fresh VM
func (s *ScriptInitializer) Init(ctx context.Context, env Env) error {
	vm := goja.New()
	vm.SetMaxCallStackSize(256)

	for _, name := range []string{"require", "process", "module", "exports"} {
		vm.Set(name, goja.Undefined())
	}
	vm.Set("notify", func(title, message string) {
		env.Notify(title, message)
	})
	vm.Set("status", func(text string) {
		env.SetStatus(s.appID, text)
	})
	vm.Set("setting", func(key string) string {
		return env.Setting(key)
	})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	if _, err := vm.RunProgram(s.program); err != nil {
		return fmt.Errorf("init %s: %w", s.appID, err)
	}
	return nil
}
