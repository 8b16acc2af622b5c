package fakerpc

import (
	"errors"
	"fmt"

	"github.com/coreos/go-semver/semver"
)

var (
	// ErrNoResponseEnqueued is reported as the outcome of a call made
	// against a path with no fake response registered for it.
	ErrNoResponseEnqueued = errors.New("no fake response enqueued")
	// ErrResponseNotActive is returned when driving a fake response before
	// any call has been made against it.
	ErrResponseNotActive = errors.New("fake response is not active")
	// ErrStreamFinished is returned when driving a fake response whose
	// call already has a terminal outcome.
	ErrStreamFinished = errors.New("response stream already finished")
	// ErrAlreadyClosed is returned when sending on a request stream that
	// has been closed.
	ErrAlreadyClosed = errors.New("request stream already closed")
)

// Channel is a fake RPC channel. It hands out call objects served by fake
// responses registered up front, in place of a real network channel. The
// channel and its registry are not safe for concurrent use; serialize
// access if a test needs to register or call from multiple goroutines.
type Channel struct {
	responses registry
}

// New creates an empty fake channel.
func New() *Channel {
	return &Channel{responses: newRegistry()}
}

// HasPending reports whether at least one fake response is still queued
// for path.
func (c *Channel) HasPending(path string) bool {
	return c.responses.hasPending(path)
}

// Close is a no-op as there is no connection to tear down.
func (c *Channel) Close() error {
	return nil
}

func (c *Channel) makeRequestHead(path string, opts CallOptions) *RequestHead {
	return &RequestHead{
		Scheme:    "http",
		Host:      "localhost",
		Path:      path,
		RequestID: opts.requestID(),
		Options:   opts,
	}
}

func noResponseErr(path string) error {
	return fmt.Errorf("%w for %q", ErrNoResponseEnqueued, path)
}

// bindUnary runs the common setup for unary-shaped calls: dequeue the next
// single-response fake for path, recover its payload types, synthesize the
// request head and activate the fake against the call's sink.
func bindUnary[Req any, Resp any](
	c *Channel,
	path string,
	opts CallOptions,
	sink unarySink[Resp],
) (*UnaryResponse[Req, Resp], *RequestHead, error) {
	head := c.makeRequestHead(path, opts)
	resp, ok := dequeue[*UnaryResponse[Req, Resp]](c, path)
	if !ok {
		return nil, head, noResponseErr(path)
	}
	resp.activate(sink)
	return resp, head, nil
}

// bindStream is the stream-shaped counterpart of bindUnary.
func bindStream[Req any, Resp any](
	c *Channel,
	path string,
	opts CallOptions,
	sink streamSink[Resp],
) (*StreamResponse[Req, Resp], *RequestHead, error) {
	head := c.makeRequestHead(path, opts)
	resp, ok := dequeue[*StreamResponse[Req, Resp]](c, path)
	if !ok {
		return nil, head, noResponseErr(path)
	}
	resp.activate(sink)
	return resp, head, nil
}

// MakeUnaryCall makes a request-response call against path. The request
// head, req and the end of the request stream are delivered to the next
// fake unary response registered for path before the call is returned. If
// none is registered, or the registered response is of a different payload
// type, the returned call reports ErrNoResponseEnqueued when awaited
// rather than failing here.
func MakeUnaryCall[Req any, Resp any](
	c *Channel,
	path string,
	req *Req,
	opts CallOptions,
) *UnaryCall[Req, Resp] {
	call := &UnaryCall[Req, Resp]{unaryCallCore: newUnaryCallCore[Resp]()}
	resp, head, err := bindUnary[Req, Resp](c, path, opts, call)
	if err != nil {
		_ = call.deliverError(err)
		return call
	}

	resp.handlePart(RequestPart[Req]{Kind: PartHead, Head: head})
	resp.handlePart(RequestPart[Req]{Kind: PartMessage, Message: req})
	resp.handlePart(RequestPart[Req]{Kind: PartEnd})
	return call
}

// MakeServerStreamCall makes a request-stream call against path. The
// request head, req and the end of the request stream are delivered to the
// next fake streaming response registered for path before the call is
// returned. Response messages are handed to onResponse synchronously as
// the fake response sends them. A missing or mismatched registration is
// reported through Status rather than here.
func MakeServerStreamCall[Req any, Resp any](
	c *Channel,
	path string,
	req *Req,
	opts CallOptions,
	onResponse func(*Resp),
) *ServerStreamCall[Req, Resp] {
	call := &ServerStreamCall[Req, Resp]{streamCallCore: newStreamCallCore[Resp](onResponse)}
	resp, head, err := bindStream[Req, Resp](c, path, opts, call)
	if err != nil {
		_ = call.deliverEnd(err)
		return call
	}

	resp.handlePart(RequestPart[Req]{Kind: PartHead, Head: head})
	resp.handlePart(RequestPart[Req]{Kind: PartMessage, Message: req})
	resp.handlePart(RequestPart[Req]{Kind: PartEnd})
	return call
}

// MakeClientStreamCall makes a stream-request call against path. Only the
// request head is delivered at construction; the caller sends request
// messages afterwards and ends the stream with CloseSend. A missing or
// mismatched registration is reported through Response and the send
// methods rather than here.
func MakeClientStreamCall[Req any, Resp any](
	c *Channel,
	path string,
	opts CallOptions,
) *ClientStreamCall[Req, Resp] {
	call := &ClientStreamCall[Req, Resp]{unaryCallCore: newUnaryCallCore[Resp]()}
	resp, head, err := bindUnary[Req, Resp](c, path, opts, call)
	if err != nil {
		call.sendErr = err
		_ = call.deliverError(err)
		return call
	}

	call.resp = resp
	resp.handlePart(RequestPart[Req]{Kind: PartHead, Head: head})
	return call
}

// MakeBidirStreamCall makes a stream-stream call against path. Only the
// request head is delivered at construction; the caller sends request
// messages afterwards and ends the stream with CloseSend. Response
// messages are handed to onResponse synchronously as the fake response
// sends them. A missing or mismatched registration is reported through
// Status and the send methods rather than here.
func MakeBidirStreamCall[Req any, Resp any](
	c *Channel,
	path string,
	opts CallOptions,
	onResponse func(*Resp),
) *BidirStreamCall[Req, Resp] {
	call := &BidirStreamCall[Req, Resp]{streamCallCore: newStreamCallCore[Resp](onResponse)}
	resp, head, err := bindStream[Req, Resp](c, path, opts, call)
	if err != nil {
		call.sendErr = err
		_ = call.deliverEnd(err)
		return call
	}

	call.resp = resp
	resp.handlePart(RequestPart[Req]{Kind: PartHead, Head: head})
	return call
}

// MethodPath composes the call path for a service method the same way the
// real channel does: "<service>/<version>/<method>". The version defaults
// to 0.0.0 and must be a valid semantic version string.
func MethodPath(service, method string, version ...string) string {
	v := semver.New("0.0.0")
	if len(version) > 0 {
		v = semver.New(version[0])
	}
	return fmt.Sprintf("%s/%s/%s", service, v.String(), method)
}
