package ast

import (
	"fmt"
	"log/slog"
)

// WildcardAction is the name of the pattern-matching action placeholder.
// Its handler matches any action but must never be fired.
const WildcardAction = "#*"

// Registry owns the per-key event handler singletons of one program:
// production handlers keyed by (entity, target activity), naming handlers
// keyed by (entity, descriptor, target membership), and action handlers
// keyed by name. Handlers are lazily created and never removed within a
// program's lifetime.
type Registry struct {
	log        *slog.Logger
	production map[productionKey]*ProductionEventHandler
	naming     map[namingKey]*NamingEventHandler
	actions    map[string]*ActionHandler
	wildcard   *ActionHandler
}

type productionKey struct {
	object ID
	state  bool
}

type namingKey struct {
	object     ID
	descriptor ID
	state      bool
}

func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	r := &Registry{
		log:        log,
		production: make(map[productionKey]*ProductionEventHandler),
		naming:     make(map[namingKey]*NamingEventHandler),
		actions:    make(map[string]*ActionHandler),
	}
	r.wildcard = &ActionHandler{
		node:      newNode(),
		reg:       r,
		name:      WildcardAction,
		wildcard:  true,
		observers: newObsSet(),
		powers:    newPowerSet(),
	}
	return r
}

// Production returns the handler notified when object's resolved activity
// becomes state.
func (r *Registry) Production(object *Object, state bool) *ProductionEventHandler {
	key := productionKey{object: object.id, state: state}
	h, ok := r.production[key]
	if !ok {
		h = &ProductionEventHandler{
			node:      newNode(),
			object:    object,
			state:     state,
			observers: newObsSet(),
		}
		r.production[key] = h
	}
	return h
}

// Naming returns the handler notified when object's membership of
// descriptor becomes state.
func (r *Registry) Naming(object, descriptor *Object, state bool) *NamingEventHandler {
	key := namingKey{object: object.id, descriptor: descriptor.id, state: state}
	h, ok := r.naming[key]
	if !ok {
		h = &NamingEventHandler{
			node:       newNode(),
			object:     object,
			descriptor: descriptor,
			state:      state,
			observers:  newObsSet(),
		}
		r.naming[key] = h
	}
	return h
}

// Action returns the handler for the named action, creating it on first
// use. The wildcard name resolves to the matching placeholder.
func (r *Registry) Action(name string) *ActionHandler {
	if name == WildcardAction {
		return r.wildcard
	}
	h, ok := r.actions[name]
	if !ok {
		h = &ActionHandler{
			node:      newNode(),
			reg:       r,
			name:      name,
			observers: newObsSet(),
			powers:    newPowerSet(),
		}
		r.actions[name] = h
	}
	return h
}

// ProductionEventHandler is the notification channel for one polarity of
// one entity's activity. It is fired exclusively from inside boolean-state
// propagation.
type ProductionEventHandler struct {
	node
	object    *Object
	state     bool
	observers *obsSet
}

func (h *ProductionEventHandler) Observe(obs Observer) {
	h.observers.add(obs)
}

func (h *ProductionEventHandler) fire(args Args) error {
	for _, obs := range h.observers.snapshot() {
		if err := obs.Notify(args); err != nil {
			return err
		}
	}
	return nil
}

func (h *ProductionEventHandler) String() string {
	return fmt.Sprintf("ProductionEvent:%s%s", polaritySign(h.state), h.object.FullName())
}

// NamingEventHandler is the notification channel for one polarity of one
// (entity, descriptor) membership. Fired exclusively from descriptor graph
// propagation.
type NamingEventHandler struct {
	node
	object     *Object
	descriptor *Object
	state      bool
	observers  *obsSet
}

func (h *NamingEventHandler) Observe(obs Observer) {
	h.observers.add(obs)
}

func (h *NamingEventHandler) fire(args Args) error {
	for _, obs := range h.observers.snapshot() {
		if err := obs.Notify(args); err != nil {
			return err
		}
	}
	return nil
}

func (h *NamingEventHandler) String() string {
	gains := "gains"
	if !h.state {
		gains = "loses"
	}
	return fmt.Sprintf("NamingEvent:%s %s %s", h.object.FullName(), gains, h.descriptor.FullName())
}

// ActionHandler dispatches one named action. When fired with a "holder"
// argument the action is gated: at least one registered power must accept
// the argument tuple, or the firing is refused (reported, not fatal).
type ActionHandler struct {
	node
	reg       *Registry
	name      string
	wildcard  bool
	observers *obsSet
	powers    *powerSet
}

func (h *ActionHandler) Name() string {
	return h.name
}

func (h *ActionHandler) Observe(obs Observer) {
	h.observers.add(obs)
}

func (h *ActionHandler) AddPower(p *PowerFrame) {
	h.powers.add(p)
}

func (h *ActionHandler) RemovePower(p *PowerFrame) {
	h.powers.remove(p)
}

// Fire dispatches the action. It reports whether the action went through;
// a gated action with no satisfied power returns false with no error and
// notifies nothing.
func (h *ActionHandler) Fire(args Args) (bool, error) {
	return h.fire(args, false)
}

// FireBypassingPowers dispatches the action ignoring power gating.
// Debugging aid only.
func (h *ActionHandler) FireBypassingPowers(args Args) (bool, error) {
	return h.fire(args, true)
}

func (h *ActionHandler) fire(args Args, bypassPowers bool) (bool, error) {
	if h.wildcard {
		return false, &TypeError{Op: "wildcard action handler is not meant to be fired"}
	}

	if _, gated := args["holder"]; gated && !bypassPowers {
		enabled := false
		for _, p := range h.powers.snapshot() {
			ok, err := p.Accepts(args)
			if err != nil {
				return false, err
			}
			if ok {
				enabled = true
				break
			}
		}
		if !enabled {
			h.reg.log.Info("action not enabled by any powers",
				"action", h.name,
				"holder", args["holder"].FullName(),
			)
			return false, nil
		}
	}

	for _, obs := range h.observers.snapshot() {
		if err := obs.Notify(args); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (h *ActionHandler) String() string {
	return "Action:" + h.name
}

func polaritySign(v bool) string {
	if v {
		return "+"
	}
	return "-"
}
