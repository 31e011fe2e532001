package service

import (
	"errors"
	"testing"

	"mailmarket/internal/domain"
	"mailmarket/internal/ledger"
	"mailmarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPersister_SaveNow(t *testing.T) {
	l := ledger.New(testutil.NewTestLogger())
	l.EnsureAccount(7)

	st := new(testutil.MockStore)
	st.On("Save", mock.MatchedBy(func(snap *domain.Snapshot) bool {
		_, ok := snap.Accounts[7]
		return ok
	})).Return(nil)

	p := NewPersister(l, st, testutil.NewTestLogger())
	p.SaveNow()

	st.AssertExpectations(t)
}

func TestPersister_SaveNow_SwallowsStoreFailure(t *testing.T) {
	l := ledger.New(testutil.NewTestLogger())

	st := new(testutil.MockStore)
	st.On("Save", mock.Anything).Return(errors.New("disk full"))

	p := NewPersister(l, st, testutil.NewTestLogger())

	assert.NotPanics(t, func() { p.SaveNow() })
	st.AssertExpectations(t)
}
