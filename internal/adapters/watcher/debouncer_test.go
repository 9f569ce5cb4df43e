package watcher_test

import (
	"sort"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/jobsync/internal/adapters/watcher"
)

func TestDebouncer_CoalescesEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var batches [][]string
		d := watcher.NewDebouncer(50*time.Millisecond, func(names []string) {
			sort.Strings(names)
			batches = append(batches, names)
		})

		d.Add("a.json")
		time.Sleep(30 * time.Millisecond)
		d.Add("b.json")
		time.Sleep(30 * time.Millisecond)
		d.Add("a.json")
		synctest.Wait()
		assert.Empty(t, batches, "window restarts on every event")

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, [][]string{{"a.json", "b.json"}}, batches)
	})
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		d := watcher.NewDebouncer(10*time.Millisecond, func([]string) { calls++ })

		d.Add("a")
		time.Sleep(20 * time.Millisecond)
		d.Add("a")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 2, calls)
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		d := watcher.NewDebouncer(10*time.Millisecond, func([]string) { calls++ })

		d.Add("a")
		d.Stop()
		d.Add("b")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		assert.Zero(t, calls)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("a")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
	})
}
