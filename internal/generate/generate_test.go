package generate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasbasham/triage"
)

func TestAllocator_Next(t *testing.T) {
	ids := NewAllocator(10)
	assert.Equal(t, uint64(10), ids.Next())
	assert.Equal(t, uint64(11), ids.Next())

	var zero Allocator
	assert.Equal(t, uint64(0), zero.Next())
}

func TestAllocator_Concurrent(t *testing.T) {
	const workers, perWorker = 8, 250

	ids := &Allocator{}
	var (
		mu   sync.Mutex
		seen = make(map[uint64]bool)
		wg   sync.WaitGroup
	)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range perWorker {
				id := ids.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
	for id := range uint64(workers * perWorker) {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

func TestPatients_Arrive(t *testing.T) {
	g := NewPatients(NewRand(42), NewAllocator(1))

	var prev uint64
	for i := range 2000 {
		p := g.Arrive(uint64(i))
		require.NoError(t, triage.ValidatePatient(p))
		assert.Equal(t, uint64(i), p.TimeOfArrival)
		assert.Zero(t, p.TimeWaited)
		if i > 0 {
			assert.Greater(t, p.ID, prev)
		}
		prev = p.ID
	}
}

func TestPatients_Reproducible(t *testing.T) {
	a := NewPatients(NewRand(7), nil)
	b := NewPatients(NewRand(7), nil)

	for i := range 100 {
		assert.Equal(t, a.Arrive(uint64(i)), b.Arrive(uint64(i)))
	}
}

func TestDoctors_Generate(t *testing.T) {
	g := NewDoctors(NewRand(1), nil, 0.01, 0.05)

	doctors := g.Generate(10)
	require.Len(t, doctors, 10)
	for i, d := range doctors {
		assert.Equal(t, uint64(i), d.ID)
		assert.GreaterOrEqual(t, d.BurnoutRate, 0.01)
		assert.Less(t, d.BurnoutRate, 0.05)
	}
}

func TestDoctors_FixedBurnout(t *testing.T) {
	g := NewDoctors(NewRand(1), nil, 0.02, 0.02)
	assert.Equal(t, 0.02, g.Next().BurnoutRate)
}
