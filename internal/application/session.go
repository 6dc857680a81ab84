package app

import (
	"sync"

	"scan-viewer/internal/domain/entity"
)

// Session состояние страницы просмотра одного скана
type Session struct {
	Scan  entity.ScanMetadata
	Stack *entity.Stack

	mu       sync.Mutex
	selected string
}

// NewSession создаёт сессию, открытую на первом срезе
func NewSession(meta entity.ScanMetadata) *Session {
	return &Session{
		Scan:  meta,
		Stack: entity.NewStack(meta),
	}
}

// SliceIndex возвращает номер текущего среза
func (s *Session) SliceIndex() int {
	return s.Stack.CurrentImageIDIndex
}

// Select запоминает выбранную в таблице группу
func (s *Session) Select(id string) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
}

// Selected возвращает выбранную группу, если она есть
func (s *Session) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected != ""
}

// ClearSelection сбрасывает выбор
func (s *Session) ClearSelection() {
	s.Select("")
}
