package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/irbridge/internal/domain"
)

func TestTransmitQueue_PreservesOrder(t *testing.T) {
	raw := &fakeRaw{delay: 2 * time.Millisecond}
	q := NewTransmitQueue(NewTransmitter(raw, discardLogger{}, nil), 1, discardLogger{})
	q.Start()

	ctx := context.Background()
	for _, seq := range []domain.DurationSequence{{1}, {2, 2}, {3, 3, 3}} {
		if err := q.Submit(ctx, seq); err != nil {
			t.Fatalf("Submit() = %v", err)
		}
	}
	if err := q.Close(time.Second); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	calls := raw.Calls()
	if len(calls) != 3 {
		t.Fatalf("got %d transmissions, want 3", len(calls))
	}
	for i, c := range calls {
		if int(c[0]) != i+1 || len(c) != i+1 {
			t.Errorf("transmission %d = %v, want frame %d", i, c, i+1)
		}
	}
}

func TestTransmitQueue_NoOverlap(t *testing.T) {
	raw := &fakeRaw{delay: 200 * time.Microsecond}
	q := NewTransmitQueue(NewTransmitter(raw, discardLogger{}, nil), 4, discardLogger{})
	q.Start()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_ = q.Submit(context.Background(), domain.DurationSequence{uint16(g), uint16(i)})
			}
		}(g)
	}
	wg.Wait()

	if err := q.Close(5 * time.Second); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if n := len(raw.Calls()); n != 80 {
		t.Errorf("got %d transmissions, want 80", n)
	}
	if o := raw.overlaps.Load(); o != 0 {
		t.Errorf("detected %d overlapping transmissions", o)
	}
}

func TestTransmitQueue_SubmitAfterClose(t *testing.T) {
	q := NewTransmitQueue(NewTransmitter(&fakeRaw{}, discardLogger{}, nil), 1, discardLogger{})
	q.Start()
	if err := q.Close(time.Second); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	err := q.Submit(context.Background(), domain.DurationSequence{1})
	if !errors.Is(err, domain.ErrQueueClosed) {
		t.Errorf("Submit() after Close = %v, want ErrQueueClosed", err)
	}
}

func TestTransmitQueue_CloseDrainsPending(t *testing.T) {
	raw := &fakeRaw{}
	q := NewTransmitQueue(NewTransmitter(raw, discardLogger{}, nil), 3, discardLogger{})

	// Not started: frames wait in the queue until Close drains them.
	for i := 1; i <= 3; i++ {
		if err := q.Submit(context.Background(), domain.DurationSequence{uint16(i)}); err != nil {
			t.Fatalf("Submit() = %v", err)
		}
	}
	if err := q.Close(time.Second); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	if n := len(raw.Calls()); n != 3 {
		t.Errorf("got %d transmissions after drain, want 3", n)
	}
}

func TestTransmitQueue_SubmitBlocksWhenFull(t *testing.T) {
	q := NewTransmitQueue(NewTransmitter(&fakeRaw{}, discardLogger{}, nil), 1, discardLogger{})
	defer q.Close(time.Second)

	// Not started, so the single slot stays occupied.
	if err := q.Submit(context.Background(), domain.DurationSequence{1}); err != nil {
		t.Fatalf("Submit() = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := q.Submit(ctx, domain.DurationSequence{2})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Submit() on full queue = %v, want DeadlineExceeded", err)
	}
}

func TestTransmitQueue_FailureDoesNotStopWorker(t *testing.T) {
	raw := &fakeRaw{err: errHardware}
	counters := &domain.Counters{}
	q := NewTransmitQueue(NewTransmitter(raw, discardLogger{}, counters), 1, discardLogger{})
	q.Start()

	for i := 0; i < 3; i++ {
		if err := q.Submit(context.Background(), domain.DurationSequence{560}); err != nil {
			t.Fatalf("Submit() = %v", err)
		}
	}
	if err := q.Close(time.Second); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	if got := counters.Snapshot().TransmitFailures; got != 3 {
		t.Errorf("TransmitFailures = %d, want 3", got)
	}
}

func TestTransmitQueue_CloseTimeout(t *testing.T) {
	raw := &fakeRaw{delay: 200 * time.Millisecond}
	q := NewTransmitQueue(NewTransmitter(raw, discardLogger{}, nil), 1, discardLogger{})
	q.Start()

	if err := q.Submit(context.Background(), domain.DurationSequence{1}); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	waitFor(func() bool { return raw.active.Load() == 1 })

	if err := q.Close(10 * time.Millisecond); err != domain.ErrShutdownTimeout {
		t.Errorf("Close() = %v, want ErrShutdownTimeout", err)
	}
	// Let the in-flight transmission finish.
	if err := q.Close(time.Second); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}
