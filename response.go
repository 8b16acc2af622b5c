package fakerpc

// PartKind discriminates the parts of an inbound request stream.
type PartKind int

const (
	// PartHead is the synthesized request head, always the first part.
	PartHead PartKind = iota
	// PartMessage is a single request message.
	PartMessage
	// PartEnd marks the end of the request stream, always the last part.
	PartEnd
)

// RequestPart is one part of the request stream observed by a fake
// response. Head is set for PartHead, Message for PartMessage; PartEnd
// carries no payload.
type RequestPart[Req any] struct {
	Kind    PartKind
	Head    *RequestHead
	Message *Req
}

// unarySink receives the single outcome of a unary-shaped call.
type unarySink[Resp any] interface {
	deliverResponse(*Resp) error
	deliverError(error) error
}

// streamSink receives response messages and the terminal status of a
// stream-shaped call.
type streamSink[Resp any] interface {
	deliverMessage(*Resp) error
	deliverEnd(error) error
}

// UnaryResponse is a registered fake response that produces a single
// response message or an error. It serves unary and client-streaming calls.
// It becomes active once the channel binds it to a call; driving it before
// that fails with ErrResponseNotActive.
type UnaryResponse[Req any, Resp any] struct {
	requestHandler func(RequestPart[Req])
	sink           unarySink[Resp]
}

func (*UnaryResponse[Req, Resp]) pendingResponse() {}

func (u *UnaryResponse[Req, Resp]) activate(sink unarySink[Resp]) {
	u.sink = sink
}

func (u *UnaryResponse[Req, Resp]) handlePart(part RequestPart[Req]) {
	if u.requestHandler != nil {
		u.requestHandler(part)
	}
}

// SendResponse delivers the response message to the call served by this
// fake response and finishes the call.
func (u *UnaryResponse[Req, Resp]) SendResponse(resp *Resp) error {
	if u.sink == nil {
		return ErrResponseNotActive
	}
	return u.sink.deliverResponse(resp)
}

// SendError finishes the call served by this fake response with err.
func (u *UnaryResponse[Req, Resp]) SendError(err error) error {
	if u.sink == nil {
		return ErrResponseNotActive
	}
	return u.sink.deliverError(err)
}

// StreamResponse is a registered fake response that produces any number of
// response messages followed by a terminal status. It serves
// server-streaming and bidirectional calls. It becomes active once the
// channel binds it to a call; driving it before that fails with
// ErrResponseNotActive.
type StreamResponse[Req any, Resp any] struct {
	requestHandler func(RequestPart[Req])
	sink           streamSink[Resp]
}

func (*StreamResponse[Req, Resp]) pendingResponse() {}

func (s *StreamResponse[Req, Resp]) activate(sink streamSink[Resp]) {
	s.sink = sink
}

func (s *StreamResponse[Req, Resp]) handlePart(part RequestPart[Req]) {
	if s.requestHandler != nil {
		s.requestHandler(part)
	}
}

// SendMessage delivers one response message to the call served by this
// fake response. The message is handed to the call's response callback
// synchronously.
func (s *StreamResponse[Req, Resp]) SendMessage(resp *Resp) error {
	if s.sink == nil {
		return ErrResponseNotActive
	}
	return s.sink.deliverMessage(resp)
}

// SendEnd finishes the call served by this fake response with the given
// terminal status. A nil status means the call finished cleanly.
func (s *StreamResponse[Req, Resp]) SendEnd(end error) error {
	if s.sink == nil {
		return ErrResponseNotActive
	}
	return s.sink.deliverEnd(end)
}

// NewUnaryResponse registers a fake unary response for path and returns it
// so the test can drive the response once a call is made. requestHandler,
// if non-nil, observes every part of the request stream: the head, each
// message and the end, in that order. Responses registered for the same
// path serve calls in registration order.
func NewUnaryResponse[Req any, Resp any](
	c *Channel,
	path string,
	requestHandler func(RequestPart[Req]),
) *UnaryResponse[Req, Resp] {
	resp := &UnaryResponse[Req, Resp]{requestHandler: requestHandler}
	c.responses.add(path, resp)
	return resp
}

// NewStreamResponse registers a fake streaming response for path and
// returns it so the test can drive the response once a call is made.
// requestHandler, if non-nil, observes every part of the request stream.
// Responses registered for the same path serve calls in registration order.
func NewStreamResponse[Req any, Resp any](
	c *Channel,
	path string,
	requestHandler func(RequestPart[Req]),
) *StreamResponse[Req, Resp] {
	resp := &StreamResponse[Req, Resp]{requestHandler: requestHandler}
	c.responses.add(path, resp)
	return resp
}

// EnqueueUnaryResponse registers a fake unary response for path that
// answers with the result of fn applied to the request message. It covers
// the common canned-response case where the test does not need to drive
// the response by hand.
func EnqueueUnaryResponse[Req any, Resp any](
	c *Channel,
	path string,
	fn func(*Req) (*Resp, error),
) {
	var (
		reqMsg *Req
		r      *UnaryResponse[Req, Resp]
	)
	r = NewUnaryResponse[Req, Resp](c, path, func(part RequestPart[Req]) {
		switch part.Kind {
		case PartMessage:
			reqMsg = part.Message
		case PartEnd:
			resp, err := fn(reqMsg)
			if err != nil {
				_ = r.SendError(err)
				return
			}
			_ = r.SendResponse(resp)
		}
	})
}

// EnqueueStreamResponses registers a fake streaming response for path that
// replays resps once the request stream ends and then finishes the call
// with the given terminal status (nil for a clean finish).
func EnqueueStreamResponses[Req any, Resp any](
	c *Channel,
	path string,
	resps []*Resp,
	end error,
) {
	var r *StreamResponse[Req, Resp]
	r = NewStreamResponse[Req, Resp](c, path, func(part RequestPart[Req]) {
		if part.Kind != PartEnd {
			return
		}
		for _, resp := range resps {
			if err := r.SendMessage(resp); err != nil {
				return
			}
		}
		_ = r.SendEnd(end)
	})
}
