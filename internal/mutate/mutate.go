// Package mutate implements the shared mutation-action contract: explicit
// confirmation for destructive actions, per-entity in-flight tracking that
// blocks duplicate submissions while leaving other entities interactive, and
// the failure-message policy (backend message verbatim when present, else a
// per-action fallback).
package mutate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Tesseract-Nexus/admin-bff/internal/envelope"
)

// Action identifies a state-changing operation on an entity.
type Action string

const (
	ActionSend          Action = "send"
	ActionPause         Action = "pause"
	ActionResume        Action = "resume"
	ActionCancel        Action = "cancel"
	ActionDelete        Action = "delete"
	ActionEnable        Action = "enable"
	ActionUpdateStatus  Action = "update-status"
	ActionUpdatePayment Action = "update-payment"
	ActionUpdateFulfil  Action = "update-fulfillment"
	ActionEdit          Action = "edit"
	ActionCreate        Action = "create"
)

// Destructive reports whether the action is semantically irreversible and
// therefore requires an explicit confirmation step before any network call.
// Purely additive or edit actions do not.
func (a Action) Destructive() bool {
	switch a {
	case ActionSend, ActionCancel, ActionDelete:
		return true
	}
	return false
}

// ErrBusy reports that the entity already has a mutation in flight.
type ErrBusy struct {
	EntityID string
	Action   Action
}

func (e *ErrBusy) Error() string {
	return fmt.Sprintf("entity %s has a %s action in flight", e.EntityID, e.Action)
}

// Tracker tracks in-flight mutations as a single entity-id → action map
// rather than one flag per action type, so adding actions never multiplies
// state. Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	inflight map[string]Action
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[string]Action)}
}

// Begin claims the entity for the given action. It returns a release
// function on success, or *ErrBusy naming the in-flight action if the
// entity is already claimed. Unrelated entities are unaffected.
func (t *Tracker) Begin(entityID string, action Action) (release func(), err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.inflight[entityID]; ok {
		return nil, &ErrBusy{EntityID: entityID, Action: current}
	}
	t.inflight[entityID] = action

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.inflight, entityID)
			t.mu.Unlock()
		})
	}, nil
}

// InFlight returns the action currently claimed for the entity, if any.
func (t *Tracker) InFlight(entityID string) (Action, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.inflight[entityID]
	return a, ok
}

// fallbackMessages are the generic per-action strings shown when the backend
// reports a failure without a usable message.
var fallbackMessages = map[Action]string{
	ActionSend:          "Failed to send campaign. Please try again.",
	ActionPause:         "Failed to pause campaign. Please try again.",
	ActionResume:        "Failed to resume campaign. Please try again.",
	ActionCancel:        "Failed to cancel. Please try again.",
	ActionDelete:        "Failed to delete. Please try again.",
	ActionEnable:        "Failed to update gateway. Please try again.",
	ActionUpdateStatus:  "Failed to update status. Please try again.",
	ActionUpdatePayment: "Failed to update payment status. Please try again.",
	ActionUpdateFulfil:  "Failed to update fulfillment status. Please try again.",
	ActionEdit:          "Failed to save changes. Please try again.",
	ActionCreate:        "Failed to create. Please try again.",
}

// FailureMessage converts a mutation error into the client-facing string:
// the backend's own message where one exists, else the per-action fallback.
// Errors are never silently swallowed; callers log the raw error separately.
func FailureMessage(action Action, err error) string {
	var remote *envelope.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	if msg, ok := fallbackMessages[action]; ok {
		return msg
	}
	return "Action failed. Please try again."
}
