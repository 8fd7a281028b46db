package seed

import (
	"context"
	"fmt"
	"sync"

	"chat-dblab/domain"
)

// Batch is the atomic unit of store I/O: all entities of one batch commit in
// a single transaction or not at all.
type Batch struct {
	Users       []domain.User
	Chats       []domain.Chat
	Memberships []domain.Membership
	Messages    []domain.Message
}

func (b *Batch) Size() int {
	return len(b.Users) + len(b.Chats) + len(b.Memberships) + len(b.Messages)
}

func (b *Batch) Empty() bool { return b.Size() == 0 }

// Flusher commits one batch atomically. Implemented by repositories.Store;
// tests substitute in-memory fakes.
type Flusher interface {
	Flush(ctx context.Context, batch *Batch, idempotent bool) error
}

// Progress carries the monotonic committed counters of a run. It is owned by
// the batcher and updated under lock so a pipelined flusher stays safe.
type Progress struct {
	Users       int
	Chats       int
	Memberships int
	Messages    int
	Batches     int
}

func (p Progress) Total() int {
	return p.Users + p.Chats + p.Memberships + p.Messages
}

// batcher buffers emitted entities and hands full batches to the flusher.
// It implements Emitter.
type batcher struct {
	ctx        context.Context
	flusher    Flusher
	size       int
	idempotent bool
	onFlush    func(Progress)

	mu       sync.Mutex
	current  Batch
	progress Progress
}

func newBatcher(ctx context.Context, flusher Flusher, size int, idempotent bool, onFlush func(Progress)) *batcher {
	return &batcher{ctx: ctx, flusher: flusher, size: size, idempotent: idempotent, onFlush: onFlush}
}

func (b *batcher) User(u domain.User) error {
	b.mu.Lock()
	b.current.Users = append(b.current.Users, u)
	return b.flushIfFullLocked()
}

func (b *batcher) Chat(c domain.Chat) error {
	b.mu.Lock()
	b.current.Chats = append(b.current.Chats, c)
	return b.flushIfFullLocked()
}

func (b *batcher) Membership(m domain.Membership) error {
	b.mu.Lock()
	b.current.Memberships = append(b.current.Memberships, m)
	return b.flushIfFullLocked()
}

func (b *batcher) Message(m domain.Message) error {
	b.mu.Lock()
	b.current.Messages = append(b.current.Messages, m)
	return b.flushIfFullLocked()
}

// flushIfFullLocked is entered holding b.mu and releases it.
func (b *batcher) flushIfFullLocked() error {
	if b.current.Size() < b.size {
		b.mu.Unlock()
		return nil
	}
	return b.flushLocked()
}

// Close flushes whatever remains buffered.
func (b *batcher) Close() error {
	b.mu.Lock()
	if b.current.Empty() {
		b.mu.Unlock()
		return nil
	}
	return b.flushLocked()
}

// flushLocked commits the current batch and releases b.mu. The batch index in
// the error is 1-based: "batch 3" is the third flush of the run.
func (b *batcher) flushLocked() error {
	batch := b.current
	b.current = Batch{}
	index := b.progress.Batches + 1
	b.mu.Unlock()

	if err := b.ctx.Err(); err != nil {
		return err
	}
	if err := b.flusher.Flush(b.ctx, &batch, b.idempotent); err != nil {
		return fmt.Errorf("batch %d (%d entities): %w", index, batch.Size(), err)
	}

	b.mu.Lock()
	b.progress.Users += len(batch.Users)
	b.progress.Chats += len(batch.Chats)
	b.progress.Memberships += len(batch.Memberships)
	b.progress.Messages += len(batch.Messages)
	b.progress.Batches = index
	snapshot := b.progress
	b.mu.Unlock()

	if b.onFlush != nil {
		b.onFlush(snapshot)
	}
	return nil
}

// Committed returns the progress counters accumulated so far.
func (b *batcher) Committed() Progress {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}
