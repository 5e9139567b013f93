package client

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/examdesk/internal/rpc"
)

// ExamWatcher holds at most one live exam list stream. Starting a new watch
// cancels the previous stream in place.
type ExamWatcher struct {
	client *rpc.ExamDeskClient

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

func (s *GRPCClient) NewExamWatcher() *ExamWatcher {
	return &ExamWatcher{client: s.client}
}

// Watch subscribes to the exam list. onUpdate runs on a background goroutine
// for every pushed list. onEnd, if set, runs once when the stream ends by
// itself; it is not called after Stop or a replacing Watch.
func (w *ExamWatcher) Watch(ctx context.Context, today bool, onUpdate func([]rpc.Exam), onEnd func(error)) error {
	sctx, cancel := context.WithCancel(ctx)
	stream, err := w.client.WatchExams(sctx, &rpc.ListExamsRequest{Today: today})
	if err != nil {
		cancel()
		return mapError(err)
	}

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.cancel = cancel
	w.gen++
	gen := w.gen
	w.mu.Unlock()

	go w.recv(stream, gen, onUpdate, onEnd)
	return nil
}

func (w *ExamWatcher) recv(stream rpc.WatchExamsClient, gen uint64, onUpdate func([]rpc.Exam), onEnd func(error)) {
	for {
		m, err := stream.Recv()
		if err != nil {
			if !w.release(gen) || onEnd == nil {
				return
			}
			if errors.Is(err, io.EOF) {
				onEnd(nil)
			} else {
				onEnd(mapError(err))
			}
			return
		}
		if !w.isCurrent(gen) {
			return
		}
		onUpdate(m.Exams)
	}
}

func (w *ExamWatcher) isCurrent(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen == gen
}

// release drops the stream of gen if it is still the current one.
func (w *ExamWatcher) release(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return false
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return true
}

// Active reports whether a stream is running.
func (w *ExamWatcher) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

// Stop cancels the running stream, if any. It is safe to call repeatedly.
func (w *ExamWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.gen++
}
