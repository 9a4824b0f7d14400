package clientstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// OfflineQueue returns the pending mutations in insertion order. The slice
// is never nil; an absent queue is an empty queue. A queue blob that no
// longer parses returns ErrQueueCorrupt and is left on disk untouched.
func (s *Store) OfflineQueue(ctx context.Context) ([]QueuedMutation, error) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.loadQueueLocked(ctx)
}

// Enqueue appends one mutation and returns it with its assigned id. Order
// is preserved: mutations can depend on earlier ones, so the queue is
// strictly FIFO. Appending over a corrupt queue is refused; the corrupt
// blob is evidence, not free space.
func (s *Store) Enqueue(ctx context.Context, kind string, payload json.RawMessage) (QueuedMutation, error) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	queue, err := s.loadQueueLocked(ctx)
	if err != nil {
		return QueuedMutation{}, err
	}

	mutation := QueuedMutation{
		ID:         uuid.NewString(),
		Kind:       kind,
		Payload:    payload,
		EnqueuedAt: s.now().UnixMilli(),
	}
	queue = append(queue, mutation)

	if err := s.storeQueueLocked(ctx, queue); err != nil {
		return QueuedMutation{}, err
	}
	s.metricInc(MetricQueueAppend)
	return mutation, nil
}

// RemoveMutation deletes the mutation with the given id, keeping the order
// of the rest. Removing an unknown id is a no-op: the replay routine may
// race a clear.
func (s *Store) RemoveMutation(ctx context.Context, id string) error {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	queue, err := s.loadQueueLocked(ctx)
	if err != nil {
		return err
	}

	kept := queue[:0]
	found := false
	for _, m := range queue {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return nil
	}

	if err := s.storeQueueLocked(ctx, kept); err != nil {
		return err
	}
	s.metricInc(MetricQueueRemove)
	return nil
}

// ClearOfflineQueue resets the queue to empty. The key stays present with
// an empty list so a subsequent read is an ordinary empty queue, not an
// absent one.
func (s *Store) ClearOfflineQueue(ctx context.Context) error {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if err := s.setRaw(ctx, KeyOfflineQueue.raw(), "[]"); err != nil {
		return err
	}
	s.metricInc(MetricQueueClear)
	return nil
}

func (s *Store) loadQueueLocked(ctx context.Context) ([]QueuedMutation, error) {
	raw, ok, err := s.getRaw(ctx, KeyOfflineQueue.raw())
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []QueuedMutation{}, nil
	}

	var queue []QueuedMutation
	if err := json.Unmarshal([]byte(raw), &queue); err != nil {
		s.metricInc(MetricQueueCorrupt)
		s.report(ctx, "queue_load", KeyOfflineQueue.raw(), fmt.Errorf("%w: %v", ErrQueueCorrupt, err))
		return nil, fmt.Errorf("%w: %v", ErrQueueCorrupt, err)
	}
	if queue == nil {
		queue = []QueuedMutation{}
	}
	return queue, nil
}

func (s *Store) storeQueueLocked(ctx context.Context, queue []QueuedMutation) error {
	encoded, err := json.Marshal(queue)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}
	return s.setRaw(ctx, KeyOfflineQueue.raw(), string(encoded))
}
