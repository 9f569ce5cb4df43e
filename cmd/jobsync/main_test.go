package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/jobsync/internal/app"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func provide(a *app.App, logger *mocks.MockLogger) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(mockLoader, mockLogger)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provide(application, mockLogger))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLoader.EXPECT().Load("broken.yaml").Return(nil, domain.ErrConfigParseFailed)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	application := app.New(mockLoader, mockLogger)

	exitCode := run(context.Background(), []string{"bookmarks", "--config", "broken.yaml"}, new(bytes.Buffer),
		provide(application, mockLogger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Cancelled verifies that a cancelled context stops a waiting command.
func TestRun_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	blockCh := make(chan struct{})
	mockLoader.EXPECT().Load(gomock.Any()).DoAndReturn(func(string) (*domain.Config, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	application := app.New(mockLoader, mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)
	go func() {
		errCh <- run(ctx, []string{"bookmarks"}, new(bytes.Buffer), provide(application, mockLogger))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
