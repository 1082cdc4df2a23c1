package host_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/tatamigo/host"
	"github.com/stretchr/testify/require"
)

func TestCoalesce_SharesOneInFlightCall(t *testing.T) {
	var calls int64
	release := make(chan struct{})
	start := make(chan struct{})

	fn := func() (int, error) {
		atomic.AddInt64(&calls, 1)
		close(start)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		v, err := host.Coalesce("k", fn)
		require.NoError(t, err)
		results[0] = v
	}()
	<-start // ensure the first call is in flight before the second arrives
	go func() {
		defer wg.Done()
		v, err := host.Coalesce("k", func() (int, error) { return fn() })
		require.NoError(t, err)
		results[1] = v
	}()
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt64(&calls))
	require.Equal(t, []int{42, 42}, results)
}

func TestCoalesce_SequentialCallsEachRunFn(t *testing.T) {
	var calls int64
	fn := func() (int, error) {
		atomic.AddInt64(&calls, 1)
		return int(calls), nil
	}

	v1, err := host.Coalesce("seq", fn)
	require.NoError(t, err)
	v2, err := host.Coalesce("seq", fn)
	require.NoError(t, err)

	require.EqualValues(t, 2, atomic.LoadInt64(&calls))
	require.Equal(t, 1, v1)
	require.Equal(t, 2, v2)
}

func TestSelectionKey_DistinguishesSelections(t *testing.T) {
	k1 := host.SelectionKey("Foo", host.Full(3), host.Full(3))
	k2 := host.SelectionKey("Foo", host.Block(0, 3), host.Full(3))
	require.NotEqual(t, k1, k2)

	k3 := host.SelectionKey("Foo", host.Full(3), host.Full(3))
	require.Equal(t, k1, k3)
}
