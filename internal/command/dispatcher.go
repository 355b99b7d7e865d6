package command

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/bhandras/rfext/internal/apierr"
	"github.com/bhandras/rfext/internal/logger"
	"github.com/bhandras/rfext/internal/response"
)

// Reply is the outcome of one dispatch: an HTTP status and exactly one
// variant.
type Reply struct {
	Status int
	Body   response.Variant
}

// DispatcherOptions tunes fault rendering.
type DispatcherOptions struct {
	// ExposeTraceback includes fault detail in 500 bodies.
	ExposeTraceback bool
}

// Dispatcher routes invocations to registered commands. It is stateless
// across requests and safe for concurrent use.
type Dispatcher struct {
	registry *Registry
	deps     Deps
	opts     DispatcherOptions
}

func NewDispatcher(registry *Registry, deps Deps, opts DispatcherOptions) *Dispatcher {
	return &Dispatcher{registry: registry, deps: deps, opts: opts}
}

// Dispatch runs the command named by p and always produces a Reply:
// unknown names give 404, invalid input 400 and handler faults 500.
func (d *Dispatcher) Dispatch(ctx context.Context, p Params) Reply {
	cmd, ok := d.registry.Lookup(p.Name)
	if !ok {
		return d.fail(apierr.Routing("unknown command %q", p.Name))
	}

	inv, err := NewInvocation(p)
	if err != nil {
		return d.fail(apierr.From(err))
	}
	if cmd.Delegated && strings.TrimSpace(inv.DelegatedToken()) == "" {
		return d.fail(apierr.Validation(apierr.ErrMissingDelegatedToken, "Rf-Extension-Token header is required"))
	}

	logger.Debugf("Dispatching %s", inv)

	v, err := d.invoke(ctx, cmd, inv)
	if err != nil {
		e := apierr.From(err)
		logger.Errorf("Command %s failed (%s): %v", inv, e.Kind, err)
		return d.fail(e)
	}
	if cmd.Kind != 0 && v.Kind() != cmd.Kind {
		e := apierr.Fault(fmt.Errorf("command %s answered %s, declared %s", cmd.Name, v.Kind(), cmd.Kind), nil)
		logger.Errorf("%v", e)
		return d.fail(e)
	}
	return Reply{Status: http.StatusOK, Body: v}
}

// invoke runs the handler once, turning a panic into a handler fault.
func (d *Dispatcher) invoke(ctx context.Context, cmd Command, inv Invocation) (v response.Variant, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apierr.Fault(fmt.Errorf("panic: %v", r), stackLines())
		}
	}()
	return cmd.Handle(ctx, d.deps, inv)
}

func (d *Dispatcher) fail(e *apierr.Error) Reply {
	return Reply{Status: e.Status(), Body: e.Variant(d.opts.ExposeTraceback)}
}

func stackLines() []string {
	lines := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
