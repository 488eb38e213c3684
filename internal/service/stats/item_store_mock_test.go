package stats

import (
	"context"
	"github.com/math-s/yeargoals/internal/kv"
	"sync"
)

var _ itemStore = &itemStoreMock{}

type itemStoreMock struct {
	GetFunc func(ctx context.Context, key kv.Key) (kv.Item, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			Key kv.Key
		}
	}
	lockGet sync.RWMutex
}

func (mock *itemStoreMock) Get(ctx context.Context, key kv.Key) (kv.Item, error) {
	if mock.GetFunc == nil {
		panic("itemStoreMock.GetFunc: method is nil but itemStore.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key kv.Key
	}{Ctx: ctx, Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *itemStoreMock) GetCalls() []struct {
	Ctx context.Context
	Key kv.Key
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
