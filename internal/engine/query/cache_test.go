package query_test

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports/mocks"
	"go.trai.ch/jobsync/internal/engine/query"
	"go.uber.org/mock/gomock"
)

// countingFetcher returns value after release is closed (or immediately when
// release is nil) and counts every call.
type countingFetcher struct {
	calls   atomic.Int32
	release chan struct{}
	value   string
	err     error
}

func (f *countingFetcher) fetch(context.Context) (string, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.value, f.err
}

func TestCache_DisabledKeyNeverFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockErrorReporter(ctrl)
	cache := query.NewCache[string](reporter, time.Hour)
	f := &countingFetcher{value: "x"}

	for _, key := range []domain.QueryKey{domain.JobItemKey(0), domain.JobItemKey(-1), domain.JobItemsKey("")} {
		result := cache.Fetch(context.Background(), key, f.fetch)
		assert.False(t, result.IsLoading)
		assert.Equal(t, domain.StatusIdle, result.Status)
		assert.Empty(t, result.Data)
	}
	assert.Zero(t, f.calls.Load())
}

func TestCache_ConcurrentSubscribersShareOneRequest(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemKey(7)
		f := &countingFetcher{value: "job 7", release: make(chan struct{})}

		var notified [5]atomic.Int32
		for i := range notified {
			cache.Subscribe(key, func(r domain.QueryResult[string]) {
				if r.Status == domain.StatusSuccess {
					notified[i].Add(1)
				}
			})
		}

		for range notified {
			result := cache.Fetch(context.Background(), key, f.fetch)
			assert.True(t, result.IsLoading)
			assert.Equal(t, domain.StatusPending, result.Status)
		}

		synctest.Wait()
		close(f.release)
		synctest.Wait()

		assert.Equal(t, int32(1), f.calls.Load())
		for i := range notified {
			assert.Equal(t, int32(1), notified[i].Load(), "subscriber %d", i)
		}

		result := cache.Get(key)
		assert.Equal(t, "job 7", result.Data)
		assert.False(t, result.IsLoading)
		assert.NoError(t, result.Err)
	})
}

func TestCache_FreshEntryIsServedFromCache(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemsKey("react")
		f := &countingFetcher{value: "list"}

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		time.Sleep(59 * time.Minute)
		result := cache.Fetch(context.Background(), key, f.fetch)

		assert.Equal(t, int32(1), f.calls.Load())
		assert.Equal(t, "list", result.Data)
		assert.False(t, result.IsLoading)
		assert.False(t, result.IsFetching)
	})
}

func TestCache_StaleEntryRefetchesOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemsKey("react")
		f := &countingFetcher{value: "v1"}

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		time.Sleep(time.Hour + time.Second)

		f.value = "v2"
		f.release = make(chan struct{})
		first := cache.Fetch(context.Background(), key, f.fetch)
		second := cache.Fetch(context.Background(), key, f.fetch)

		// Stale data stays visible while the refetch is in flight.
		assert.Equal(t, "v1", first.Data)
		assert.False(t, first.IsLoading)
		assert.True(t, first.IsFetching)
		assert.True(t, second.IsFetching)

		synctest.Wait()
		close(f.release)
		synctest.Wait()

		assert.Equal(t, int32(2), f.calls.Load())
		assert.Equal(t, "v2", cache.Get(key).Data)
	})
}

func TestCache_ErrorIsReportedOnceAndPersists(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := mocks.NewMockErrorReporter(ctrl)
		key := domain.JobItemKey(999)
		notFound := &domain.NetworkError{StatusCode: 404, Description: "not found"}
		reporter.EXPECT().Report(key, notFound).Times(1)

		cache := query.NewCache[string](reporter, time.Hour)
		f := &countingFetcher{err: notFound}

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		// No automatic retries.
		time.Sleep(10 * time.Minute)
		synctest.Wait()
		assert.Equal(t, int32(1), f.calls.Load())

		result := cache.Get(key)
		assert.Equal(t, domain.StatusError, result.Status)
		require.ErrorIs(t, result.Err, domain.ErrJobAPIRequestFailed)
		assert.Equal(t, "not found", domain.UserMessage(result.Err))
		assert.False(t, result.IsLoading)
	})
}

func TestCache_FailedEntryRetriesOnNextFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := mocks.NewMockErrorReporter(ctrl)
		reporter.EXPECT().Report(gomock.Any(), gomock.Any()).Times(1)

		cache := query.NewCache[string](reporter, time.Hour)
		key := domain.JobItemKey(3)
		f := &countingFetcher{err: &domain.NetworkError{StatusCode: 500, Description: "server error"}}

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		f.err = nil
		f.value = "recovered"
		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		result := cache.Get(key)
		assert.Equal(t, int32(2), f.calls.Load())
		assert.Equal(t, domain.StatusSuccess, result.Status)
		assert.Equal(t, "recovered", result.Data)
		assert.NoError(t, result.Err)
	})
}

func TestCache_FailedRefetchKeepsPreviousData(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := mocks.NewMockErrorReporter(ctrl)
		reporter.EXPECT().Report(gomock.Any(), gomock.Any()).Times(1)

		cache := query.NewCache[string](reporter, time.Minute)
		key := domain.JobItemsKey("go")
		f := &countingFetcher{value: "cached"}

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()
		time.Sleep(2 * time.Minute)

		f.err = &domain.NetworkError{StatusCode: 503, Description: "unavailable"}
		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		result := cache.Get(key)
		assert.Equal(t, domain.StatusError, result.Status)
		assert.Equal(t, "cached", result.Data)
		require.Error(t, result.Err)
	})
}

func TestCache_PanickingFetcherBecomesError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := mocks.NewMockErrorReporter(ctrl)
		reporter.EXPECT().Report(domain.JobItemKey(1), gomock.Any()).Times(1)

		cache := query.NewCache[string](reporter, time.Hour)
		cache.Fetch(context.Background(), domain.JobItemKey(1), func(context.Context) (string, error) {
			panic("boom")
		})
		synctest.Wait()

		require.ErrorIs(t, cache.Get(domain.JobItemKey(1)).Err, domain.ErrFetcherPanicked)
	})
}

func TestCache_Refetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemKey(5)
		f := &countingFetcher{value: "a"}

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		f.value = "b"
		cache.Refetch(context.Background(), key, f.fetch)
		synctest.Wait()

		assert.Equal(t, int32(2), f.calls.Load())
		assert.Equal(t, "b", cache.Get(key).Data)
	})
}

func TestCache_CancelledCallerDoesNotAbortRequest(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemKey(8)

		ctx, cancel := context.WithCancel(context.Background())
		release := make(chan struct{})
		cache.Fetch(ctx, key, func(ctx context.Context) (string, error) {
			<-release
			return "done", ctx.Err()
		})
		cancel()
		close(release)
		synctest.Wait()

		result := cache.Get(key)
		assert.Equal(t, domain.StatusSuccess, result.Status)
		assert.Equal(t, "done", result.Data)
	})
}

func TestCache_Await(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		f := &countingFetcher{value: "awaited"}

		got, err := cache.Await(context.Background(), domain.JobItemKey(2), f.fetch)
		require.NoError(t, err)
		assert.Equal(t, "awaited", got)

		_, err = cache.Await(context.Background(), domain.JobItemsKey(" "), f.fetch)
		require.ErrorIs(t, err, domain.ErrQueryDisabled)
		assert.Equal(t, int32(1), f.calls.Load())
	})
}

func TestCache_AwaitReturnsRequestError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := mocks.NewMockErrorReporter(ctrl)
		reporter.EXPECT().Report(gomock.Any(), gomock.Any()).Times(1)

		cache := query.NewCache[string](reporter, time.Hour)
		f := &countingFetcher{err: &domain.NetworkError{StatusCode: 404, Description: "not found"}}

		_, err := cache.Await(context.Background(), domain.JobItemKey(404), f.fetch)
		require.ErrorIs(t, err, domain.ErrJobAPIRequestFailed)
	})
}

func TestCache_AwaitHonoursContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		f := &countingFetcher{release: make(chan struct{})}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		_, err := cache.Await(ctx, domain.JobItemKey(1), f.fetch)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		close(f.release)
		synctest.Wait()
	})
}

func TestCache_FetchManyAndAwaitMany(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := mocks.NewMockErrorReporter(ctrl)
		reporter.EXPECT().Report(domain.JobItemKey(2), gomock.Any()).Times(1)

		cache := query.NewCache[string](reporter, time.Hour)
		var calls atomic.Int32
		fetchFor := func(key domain.QueryKey) query.Fetcher[string] {
			return func(context.Context) (string, error) {
				calls.Add(1)
				if key.ID == 2 {
					return "", &domain.NetworkError{StatusCode: 404, Description: "not found"}
				}
				return key.String(), nil
			}
		}

		keys := []domain.QueryKey{domain.JobItemKey(1), domain.JobItemKey(2), domain.JobItemKey(1), domain.JobItemKey(3)}

		pending := cache.FetchMany(context.Background(), keys, fetchFor)
		require.Len(t, pending, 4)
		assert.Equal(t, domain.JobItemKey(2), pending[1].Key)

		results, err := cache.AwaitMany(context.Background(), keys, fetchFor)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.Equal(t, int32(3), calls.Load(), "the repeated key shares one request")
		assert.Equal(t, "job-item/1", results[0].Data)
		require.Error(t, results[1].Err)
		assert.Equal(t, "job-item/1", results[2].Data)
		assert.Equal(t, "job-item/3", results[3].Data)
	})
}

func TestCache_Unsubscribe(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemKey(1)

		var calls atomic.Int32
		unsubscribe := cache.Subscribe(key, func(domain.QueryResult[string]) { calls.Add(1) })
		unsubscribe()

		cache.Fetch(context.Background(), key, (&countingFetcher{value: "x"}).fetch)
		synctest.Wait()

		assert.Zero(t, calls.Load())
	})
}

func TestCache_SlowSubscriberDoesNotReorderNotifications(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemKey(3)
		f := &countingFetcher{value: "job 3"}

		cache.Subscribe(key, func(r domain.QueryResult[string]) {
			if r.Status == domain.StatusPending {
				time.Sleep(50 * time.Millisecond)
			}
		})
		var statuses []domain.QueryStatus
		cache.Subscribe(key, func(r domain.QueryResult[string]) {
			statuses = append(statuses, r.Status)
		})

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		assert.Equal(t, []domain.QueryStatus{domain.StatusPending, domain.StatusSuccess}, statuses)
		assert.Equal(t, domain.StatusSuccess, cache.Get(key).Status)
	})
}

func TestCache_ChangeDuringDeliveryIsDeliveredLast(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := query.NewCache[string](mocks.NewMockErrorReporter(ctrl), time.Hour)
		key := domain.JobItemKey(4)
		f := &countingFetcher{value: "a"}

		gate := make(chan struct{})
		blocked := false
		cache.Subscribe(key, func(r domain.QueryResult[string]) {
			if r.Status == domain.StatusSuccess && !blocked {
				blocked = true
				<-gate
			}
		})
		var seen []domain.QueryResult[string]
		cache.Subscribe(key, func(r domain.QueryResult[string]) {
			seen = append(seen, r)
		})

		cache.Fetch(context.Background(), key, f.fetch)
		synctest.Wait()

		// The first subscriber holds the success notification while the key refetches.
		f.value = "b"
		f.release = make(chan struct{})
		cache.Refetch(context.Background(), key, f.fetch)
		close(gate)
		synctest.Wait()

		require.NotEmpty(t, seen)
		assert.Equal(t, domain.StatusPending, seen[len(seen)-1].Status)

		close(f.release)
		synctest.Wait()

		last := seen[len(seen)-1]
		assert.Equal(t, domain.StatusSuccess, last.Status)
		assert.Equal(t, "b", last.Data)
		assert.Equal(t, cache.Get(key), last)
		assert.Equal(t, int32(2), f.calls.Load())
	})
}
