package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/usa-attractions/internal/ingest"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindAttractionIDByName(ctx context.Context, name string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockStore) CreateAttraction(ctx context.Context, in types.AttractionInput) (*types.Attraction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Attraction), args.Error(1)
}

func (m *MockStore) UpdateAttraction(ctx context.Context, id uuid.UUID, patch types.AttractionPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func named(name string) interface{} {
	return mock.MatchedBy(func(in types.AttractionInput) bool { return in.Name == name })
}

func TestSelectSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attractions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	src, err := selectSource("")
	require.NoError(t, err)
	assert.Equal(t, "literal", src.Name())

	src, err = selectSource(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "literal", src.Name())

	src, err = selectSource(path)
	require.NoError(t, err)
	assert.Equal(t, "file", src.Name())
}

func TestSeed_ExitCode(t *testing.T) {
	ctx := context.Background()

	t.Run("every item stored", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindAttractionIDByName", mock.Anything, mock.Anything).Return(uuid.Nil, false, nil)
		store.On("CreateAttraction", mock.Anything, mock.Anything).Return(&types.Attraction{ID: uuid.New()}, nil)

		assert.Equal(t, 0, seed(ctx, store, ingest.NewLiteralSource(), discardLogger()))
		store.AssertNumberOfCalls(t, "CreateAttraction", 5)
	})

	t.Run("one failed item fails the run", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindAttractionIDByName", mock.Anything, mock.Anything).Return(uuid.Nil, false, nil)
		store.On("CreateAttraction", mock.Anything, named("Times Square")).Return(nil, errors.New("connection reset"))
		store.On("CreateAttraction", mock.Anything, mock.Anything).Return(&types.Attraction{ID: uuid.New()}, nil)

		assert.Equal(t, 1, seed(ctx, store, ingest.NewLiteralSource(), discardLogger()))
		store.AssertNumberOfCalls(t, "CreateAttraction", 5)
	})

	t.Run("unreadable seed file aborts before any write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "attractions.json")
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
		store := new(MockStore)

		assert.Equal(t, 1, seed(ctx, store, ingest.NewFileSource(path), discardLogger()))
		store.AssertNotCalled(t, "FindAttractionIDByName", mock.Anything, mock.Anything)
	})
}
