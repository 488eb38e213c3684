package library

import (
	"context"
	"github.com/math-s/yeargoals/internal/provider"
	"sync"
)

var _ bookLookup = &bookLookupMock{}

type bookLookupMock struct {
	LookupISBNFunc func(ctx context.Context, isbn string) (*provider.BookResult, error)

	calls struct {
		LookupISBN []struct {
			Ctx  context.Context
			Isbn string
		}
	}
	lockLookupISBN sync.RWMutex
}

func (mock *bookLookupMock) LookupISBN(ctx context.Context, isbn string) (*provider.BookResult, error) {
	if mock.LookupISBNFunc == nil {
		panic("bookLookupMock.LookupISBNFunc: method is nil but bookLookup.LookupISBN was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Isbn string
	}{Ctx: ctx, Isbn: isbn}
	mock.lockLookupISBN.Lock()
	mock.calls.LookupISBN = append(mock.calls.LookupISBN, callInfo)
	mock.lockLookupISBN.Unlock()
	return mock.LookupISBNFunc(ctx, isbn)
}

func (mock *bookLookupMock) LookupISBNCalls() []struct {
	Ctx  context.Context
	Isbn string
} {
	mock.lockLookupISBN.RLock()
	calls := mock.calls.LookupISBN
	mock.lockLookupISBN.RUnlock()
	return calls
}
