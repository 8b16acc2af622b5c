package fakerpc

import "context"

type unaryOutcome[Resp any] struct {
	resp *Resp
	err  error
}

// unaryCallCore is shared by the two call shapes that finish with a single
// response. The outcome channel is buffered so delivery never blocks the
// fake response.
type unaryCallCore[Resp any] struct {
	outC     chan unaryOutcome[Resp]
	finished bool
	received bool
	out      unaryOutcome[Resp]
}

func newUnaryCallCore[Resp any]() unaryCallCore[Resp] {
	return unaryCallCore[Resp]{outC: make(chan unaryOutcome[Resp], 1)}
}

func (c *unaryCallCore[Resp]) deliverResponse(resp *Resp) error {
	return c.finish(unaryOutcome[Resp]{resp: resp})
}

func (c *unaryCallCore[Resp]) deliverError(err error) error {
	return c.finish(unaryOutcome[Resp]{err: err})
}

func (c *unaryCallCore[Resp]) finish(out unaryOutcome[Resp]) error {
	if c.finished {
		return ErrStreamFinished
	}
	c.finished = true
	c.outC <- out
	return nil
}

// Response blocks until the call has an outcome or ctx is done. The
// outcome is cached, so repeated calls return the same result.
func (c *unaryCallCore[Resp]) Response(ctx context.Context) (*Resp, error) {
	if c.received {
		return c.out.resp, c.out.err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-c.outC:
		c.received = true
		c.out = out
		return out.resp, out.err
	}
}

// streamCallCore is shared by the two call shapes that produce a response
// stream. Messages are handed to the response callback synchronously; the
// terminal status is buffered for Status.
type streamCallCore[Resp any] struct {
	onResponse func(*Resp)
	endC       chan error
	finished   bool
	received   bool
	end        error
}

func newStreamCallCore[Resp any](onResponse func(*Resp)) streamCallCore[Resp] {
	return streamCallCore[Resp]{onResponse: onResponse, endC: make(chan error, 1)}
}

func (c *streamCallCore[Resp]) deliverMessage(resp *Resp) error {
	if c.finished {
		return ErrStreamFinished
	}
	if c.onResponse != nil {
		c.onResponse(resp)
	}
	return nil
}

func (c *streamCallCore[Resp]) deliverEnd(err error) error {
	if c.finished {
		return ErrStreamFinished
	}
	c.finished = true
	c.endC <- err
	return nil
}

// Status blocks until the response stream has ended or ctx is done. A nil
// status means the call finished cleanly. The status is cached, so
// repeated calls return the same result.
func (c *streamCallCore[Resp]) Status(ctx context.Context) error {
	if c.received {
		return c.end
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case end := <-c.endC:
		c.received = true
		c.end = end
		return end
	}
}

// UnaryCall is a single request-response call. The request is delivered to
// the serving fake response when the call is made; Response awaits the
// outcome.
type UnaryCall[Req any, Resp any] struct {
	unaryCallCore[Resp]
}

// ServerStreamCall is a request-stream call. Response messages arrive
// through the callback supplied to MakeServerStreamCall; Status awaits the
// terminal status.
type ServerStreamCall[Req any, Resp any] struct {
	streamCallCore[Resp]
}

// ClientStreamCall is a stream-request call. The caller sends request
// messages and closes the stream, then awaits the single response.
type ClientStreamCall[Req any, Resp any] struct {
	unaryCallCore[Resp]
	resp    *UnaryResponse[Req, Resp]
	sendErr error
	closed  bool
}

// SendMessage delivers one request message to the serving fake response.
func (c *ClientStreamCall[Req, Resp]) SendMessage(req *Req) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	if c.closed {
		return ErrAlreadyClosed
	}
	c.resp.handlePart(RequestPart[Req]{Kind: PartMessage, Message: req})
	return nil
}

// CloseSend ends the request stream. No messages can be sent afterwards.
func (c *ClientStreamCall[Req, Resp]) CloseSend() error {
	if c.sendErr != nil {
		return c.sendErr
	}
	if c.closed {
		return ErrAlreadyClosed
	}
	c.closed = true
	c.resp.handlePart(RequestPart[Req]{Kind: PartEnd})
	return nil
}

// BidirStreamCall is a stream-stream call. The caller sends request
// messages and closes the stream; response messages arrive through the
// callback supplied to MakeBidirStreamCall and Status awaits the terminal
// status.
type BidirStreamCall[Req any, Resp any] struct {
	streamCallCore[Resp]
	resp    *StreamResponse[Req, Resp]
	sendErr error
	closed  bool
}

// SendMessage delivers one request message to the serving fake response.
func (c *BidirStreamCall[Req, Resp]) SendMessage(req *Req) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	if c.closed {
		return ErrAlreadyClosed
	}
	c.resp.handlePart(RequestPart[Req]{Kind: PartMessage, Message: req})
	return nil
}

// CloseSend ends the request stream. No messages can be sent afterwards.
func (c *BidirStreamCall[Req, Resp]) CloseSend() error {
	if c.sendErr != nil {
		return c.sendErr
	}
	if c.closed {
		return ErrAlreadyClosed
	}
	c.closed = true
	c.resp.handlePart(RequestPart[Req]{Kind: PartEnd})
	return nil
}
