package chat

import "github.com/diogo/askbox/internal/models"

// Observer receives view updates from a Session. Calls are made without the
// session lock held, from whichever goroutine is running the submission.
type Observer interface {
	MessageAppended(msg models.Message)
	InputCleared()
	BusyChanged(busy bool)
}

// NopObserver ignores every update
type NopObserver struct{}

func (NopObserver) MessageAppended(models.Message) {}
func (NopObserver) InputCleared()                  {}
func (NopObserver) BusyChanged(bool)               {}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnMessage func(models.Message)
	OnClear   func()
	OnBusy    func(bool)
}

func (f ObserverFuncs) MessageAppended(msg models.Message) {
	if f.OnMessage != nil {
		f.OnMessage(msg)
	}
}

func (f ObserverFuncs) InputCleared() {
	if f.OnClear != nil {
		f.OnClear()
	}
}

func (f ObserverFuncs) BusyChanged(busy bool) {
	if f.OnBusy != nil {
		f.OnBusy(busy)
	}
}
