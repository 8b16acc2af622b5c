package fakerpc

import "github.com/eapache/queue"

// pendingResponse is the untyped capability under which fake responses of
// heterogeneous payload types share one registry. The concrete type is
// recovered with an explicit type assertion at dequeue.
type pendingResponse interface {
	pendingResponse()
}

// registry maps call paths to FIFO queues of pending fake responses. Queues
// are created lazily on first registration; a missing or empty queue means
// no call can be served for that path.
type registry struct {
	queues map[string]*queue.Queue
}

func newRegistry() registry {
	return registry{queues: make(map[string]*queue.Queue)}
}

func (r *registry) add(path string, resp pendingResponse) {
	q, ok := r.queues[path]
	if !ok {
		q = queue.New()
		r.queues[path] = q
	}
	q.Add(resp)
}

func (r *registry) hasPending(path string) bool {
	q, ok := r.queues[path]
	return ok && q.Length() > 0
}

func (r *registry) next(path string) (pendingResponse, bool) {
	q, ok := r.queues[path]
	if !ok || q.Length() == 0 {
		return nil, false
	}
	return q.Remove().(pendingResponse), true
}

// dequeue removes the next pending fake response for path and recovers its
// concrete type. The head of the queue is consumed even when it turns out
// to be of a different type, so a mismatch permanently uses up that slot
// and is indistinguishable from an empty queue for the caller.
func dequeue[H pendingResponse](c *Channel, path string) (H, bool) {
	var zero H
	next, ok := c.responses.next(path)
	if !ok {
		return zero, false
	}
	h, ok := next.(H)
	if !ok {
		return zero, false
	}
	return h, true
}
