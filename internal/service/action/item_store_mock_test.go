package action

import (
	"context"
	"github.com/math-s/yeargoals/internal/kv"
	"sync"
)

var _ itemStore = &itemStoreMock{}

type itemStoreMock struct {
	PutFunc func(ctx context.Context, item kv.Item) error

	QueryFunc func(ctx context.Context, q kv.Query) ([]kv.Item, error)

	UpdateFunc func(ctx context.Context, u kv.Update) (kv.Item, error)

	calls struct {
		Put []struct {
			Ctx  context.Context
			Item kv.Item
		}
		Query []struct {
			Ctx context.Context
			Q   kv.Query
		}
		Update []struct {
			Ctx context.Context
			U   kv.Update
		}
	}
	lockPut    sync.RWMutex
	lockQuery  sync.RWMutex
	lockUpdate sync.RWMutex
}

func (mock *itemStoreMock) Put(ctx context.Context, item kv.Item) error {
	if mock.PutFunc == nil {
		panic("itemStoreMock.PutFunc: method is nil but itemStore.Put was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item kv.Item
	}{Ctx: ctx, Item: item}
	mock.lockPut.Lock()
	mock.calls.Put = append(mock.calls.Put, callInfo)
	mock.lockPut.Unlock()
	return mock.PutFunc(ctx, item)
}

func (mock *itemStoreMock) PutCalls() []struct {
	Ctx  context.Context
	Item kv.Item
} {
	mock.lockPut.RLock()
	calls := mock.calls.Put
	mock.lockPut.RUnlock()
	return calls
}

func (mock *itemStoreMock) Query(ctx context.Context, q kv.Query) ([]kv.Item, error) {
	if mock.QueryFunc == nil {
		panic("itemStoreMock.QueryFunc: method is nil but itemStore.Query was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   kv.Query
	}{Ctx: ctx, Q: q}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, q)
}

func (mock *itemStoreMock) QueryCalls() []struct {
	Ctx context.Context
	Q   kv.Query
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}

func (mock *itemStoreMock) Update(ctx context.Context, u kv.Update) (kv.Item, error) {
	if mock.UpdateFunc == nil {
		panic("itemStoreMock.UpdateFunc: method is nil but itemStore.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   kv.Update
	}{Ctx: ctx, U: u}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, u)
}

func (mock *itemStoreMock) UpdateCalls() []struct {
	Ctx context.Context
	U   kv.Update
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
