// Package capture drives the multi-turn collection of question and answer
// content from a single user in a single chat. Flow state lives only in the
// memory of the goroutine running the flow; nothing survives a restart.
package capture

import (
	"StackBot/internal/domain/errorz"
	"context"
	"sync"
	"time"
)

type flowKey struct {
	userID int64
	chatID int64
}

// Engine routes inbound messages and confirmation presses to the in-flight
// flow they belong to. At most one flow exists per (user, chat) pair.
type Engine struct {
	mu    sync.Mutex
	flows map[flowKey]*Flow
}

func NewEngine() *Engine {
	return &Engine{flows: make(map[flowKey]*Flow)}
}

// Flow is one in-flight capture conversation. Replies and decisions are
// buffered by one element so a message arriving between two awaits is not
// lost to the select.
type Flow struct {
	key       flowKey
	engine    *Engine
	replies   chan string
	decisions chan bool
	closeOnce sync.Once
}

// Begin registers a new flow for the pair. A second Begin while a flow is
// active fails with ErrFlowActive.
func (e *Engine) Begin(userID, chatID int64) (*Flow, error) {
	key := flowKey{userID: userID, chatID: chatID}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.flows[key]; ok {
		return nil, errorz.ErrFlowActive
	}
	f := &Flow{
		key:       key,
		engine:    e,
		replies:   make(chan string, 1),
		decisions: make(chan bool, 1),
	}
	e.flows[key] = f
	return f, nil
}

// Deliver hands a text message to the flow started by exactly this user in
// exactly this chat. It reports whether the message was consumed; messages
// from any other (user, chat) pair, or arriving while the flow is not
// awaiting a reply, are not.
func (e *Engine) Deliver(userID, chatID int64, text string) bool {
	f := e.lookup(userID, chatID)
	if f == nil {
		return false
	}
	select {
	case f.replies <- text:
		return true
	default:
		return false
	}
}

// Decide hands a confirm (true) or cancel (false) press to the flow. The
// same-user binding is enforced here regardless of who could press the
// button in the chat.
func (e *Engine) Decide(userID, chatID int64, confirmed bool) bool {
	f := e.lookup(userID, chatID)
	if f == nil {
		return false
	}
	select {
	case f.decisions <- confirmed:
		return true
	default:
		return false
	}
}

// Active reports whether a flow is in flight for the pair.
func (e *Engine) Active(userID, chatID int64) bool {
	return e.lookup(userID, chatID) != nil
}

func (e *Engine) lookup(userID, chatID int64) *Flow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flows[flowKey{userID: userID, chatID: chatID}]
}

// AwaitReply suspends until the next qualifying message, the timeout, or
// context cancellation. Timeout is terminal for the whole flow.
func (f *Flow) AwaitReply(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case text := <-f.replies:
		return text, nil
	case <-timer.C:
		return "", errorz.ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// AwaitDecision suspends until the confirmation gate resolves. It returns
// false with a nil error when the user pressed Cancel.
func (f *Flow) AwaitDecision(ctx context.Context, timeout time.Duration) (bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case confirmed := <-f.decisions:
		return confirmed, nil
	case <-timer.C:
		return false, errorz.ErrTimeout
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Close deregisters the flow. Always deferred by the flow owner; terminal
// states are never resumable.
func (f *Flow) Close() {
	f.closeOnce.Do(func() {
		f.engine.mu.Lock()
		delete(f.engine.flows, f.key)
		f.engine.mu.Unlock()
	})
}
