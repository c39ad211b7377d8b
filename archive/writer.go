package archive

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrWriterClosed is returned when a record is submitted after Close.
var ErrWriterClosed = errors.New("archive writer is closed")

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Workers is the number of archival goroutines. Defaults to 2.
	Workers int

	// Compression applied to encoded records. Defaults to CompressionZSTD.
	Compression Compression

	// PutTimeout bounds each store write. Defaults to 30 seconds.
	PutTimeout time.Duration

	// Logger receives archival failures.
	Logger *slog.Logger
}

// Writer archives records asynchronously on a fixed pool of workers.
//
// Submission never blocks on the store; a full queue applies backpressure
// through the submit channel only. Failed writes are logged and counted,
// never surfaced to the solve path.
type Writer struct {
	store       Store
	compression Compression
	putTimeout  time.Duration
	logger      *slog.Logger

	workCh   chan *Record
	stopCh   chan struct{}
	wg       sync.WaitGroup
	closed   atomic.Bool
	submitMu sync.RWMutex

	archived atomic.Int64
	failures atomic.Int64
}

// NewWriter starts a writer on top of store.
func NewWriter(store Store, optFns ...func(*WriterOptions)) *Writer {
	opts := WriterOptions{
		Workers:     2,
		Compression: CompressionZSTD,
		PutTimeout:  30 * time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	w := &Writer{
		store:       store,
		compression: opts.Compression,
		putTimeout:  opts.PutTimeout,
		logger:      opts.Logger,
		workCh:      make(chan *Record, opts.Workers*2),
		stopCh:      make(chan struct{}),
	}
	w.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go w.worker()
	}
	return w
}

// Record enqueues rec for archival. It returns once the record is queued,
// not once it is stored.
func (w *Writer) Record(ctx context.Context, rec *Record) error {
	w.submitMu.RLock()
	defer w.submitMu.RUnlock()

	if w.closed.Load() {
		return ErrWriterClosed
	}

	select {
	case w.workCh <- rec:
		return nil
	case <-w.stopCh:
		return ErrWriterClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Archived returns the number of records stored successfully.
func (w *Writer) Archived() int64 {
	return w.archived.Load()
}

// Failures returns the number of records that could not be stored.
func (w *Writer) Failures() int64 {
	return w.failures.Load()
}

// Close drains queued records and stops the workers. It is idempotent.
func (w *Writer) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}

	w.submitMu.Lock()
	close(w.stopCh)
	close(w.workCh)
	w.submitMu.Unlock()

	w.wg.Wait()
	return nil
}

func (w *Writer) worker() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			// Drain remaining records before exiting.
			for {
				select {
				case rec, ok := <-w.workCh:
					if !ok {
						return
					}
					w.archive(rec)
				default:
					return
				}
			}
		case rec, ok := <-w.workCh:
			if !ok {
				return
			}
			w.archive(rec)
		}
	}
}

func (w *Writer) archive(rec *Record) {
	data, err := EncodeRecord(rec, w.compression)
	if err != nil {
		w.failures.Add(1)
		w.logger.Error("encoding run record failed", "run_id", rec.RunID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.putTimeout)
	defer cancel()

	if err := w.store.Put(ctx, rec.Key(), data); err != nil {
		w.failures.Add(1)
		w.logger.Error("archiving run record failed", "run_id", rec.RunID, "error", err)
		return
	}
	w.archived.Add(1)
}
