package action

import (
	"context"
	"github.com/math-s/yeargoals/internal/domain"
	"sync"
)

var _ bookCatalog = &bookCatalogMock{}

type bookCatalogMock struct {
	GetFunc func(ctx context.Context, isbn string) (domain.Book, error)

	ResolveFunc func(ctx context.Context, isbn string) (domain.Book, error)

	calls struct {
		Get []struct {
			Ctx  context.Context
			Isbn string
		}
		Resolve []struct {
			Ctx  context.Context
			Isbn string
		}
	}
	lockGet     sync.RWMutex
	lockResolve sync.RWMutex
}

func (mock *bookCatalogMock) Get(ctx context.Context, isbn string) (domain.Book, error) {
	if mock.GetFunc == nil {
		panic("bookCatalogMock.GetFunc: method is nil but bookCatalog.Get was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Isbn string
	}{Ctx: ctx, Isbn: isbn}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, isbn)
}

func (mock *bookCatalogMock) GetCalls() []struct {
	Ctx  context.Context
	Isbn string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *bookCatalogMock) Resolve(ctx context.Context, isbn string) (domain.Book, error) {
	if mock.ResolveFunc == nil {
		panic("bookCatalogMock.ResolveFunc: method is nil but bookCatalog.Resolve was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Isbn string
	}{Ctx: ctx, Isbn: isbn}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, isbn)
}

func (mock *bookCatalogMock) ResolveCalls() []struct {
	Ctx  context.Context
	Isbn string
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}
