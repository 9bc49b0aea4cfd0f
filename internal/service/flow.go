package service

import (
	"sync"

	"github.com/mn-works/earnbot/internal/domain"
)

// FlowKind names a multi-step text dialog. Exactly one flow can be active per
// chat; starting a new one abandons the old.
type FlowKind string

const (
	FlowLogin            FlowKind = "login"
	FlowRegister         FlowKind = "register"
	FlowWithdraw         FlowKind = "withdraw"
	FlowPayment          FlowKind = "payment"
	FlowTaskCreate       FlowKind = "task_create"
	FlowTaskEdit         FlowKind = "task_edit"
	FlowWithdrawalRemark FlowKind = "withdrawal_remark"
	FlowUserSearch       FlowKind = "user_search"
	FlowTaskImport       FlowKind = "task_import"
)

// Flow is the state of one dialog: which step it is on and what the user has
// answered so far. Package and Task carry the object the flow operates on.
type Flow struct {
	Kind    FlowKind
	Step    int
	Data    map[string]string
	Package *domain.Package
	Task    *domain.Task
}

// FlowStore tracks the active dialog per chat.
type FlowStore struct {
	mu    sync.Mutex
	flows map[int64]*Flow
}

func NewFlowStore() *FlowStore {
	return &FlowStore{flows: make(map[int64]*Flow)}
}

// Begin replaces any active flow with a fresh one and returns it.
func (s *FlowStore) Begin(chatID int64, kind FlowKind) *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow := &Flow{Kind: kind, Data: make(map[string]string)}
	s.flows[chatID] = flow
	return flow
}

// Active returns the chat's flow, or nil when no dialog is running.
func (s *FlowStore) Active(chatID int64) *Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flows[chatID]
}

// Advance applies fn to the active flow under the store lock and bumps the
// step. Returns ErrFlowNotActive when the chat has no dialog or its kind does
// not match.
func (s *FlowStore) Advance(chatID int64, kind FlowKind, fn func(*Flow)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.flows[chatID]
	if !ok || flow.Kind != kind {
		return domain.ErrFlowNotActive
	}
	fn(flow)
	flow.Step++
	return nil
}

// End clears the chat's dialog.
func (s *FlowStore) End(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, chatID)
}
