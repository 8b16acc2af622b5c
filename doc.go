// Package fakerpc provides a fake RPC channel for exercising generated RPC
// client code in unit tests, without any network I/O. It tries to provide
// the same call surface as a real channel, but with the use of generics.
// With generics we can provide a type-safe API and still store fake
// responses for different payload types behind one registry.
//
// The channel supports the four types of RPCs:
//  1. Request-Response: The client sends a request and waits for a response.
//  2. Request-Stream: The client sends a request and gets a stream of responses.
//  3. Stream-Request: The client sends a stream of requests and gets a response.
//  4. Stream-Stream: The client sends a stream of requests and gets a stream
//     of responses.
//
// Tests register fake responses up front, keyed by the call path. Responses
// for the same path are held in a FIFO queue, so the Nth call made against a
// path is served by the Nth response registered for it. There are two
// response flavors: UnaryResponse produces a single response (serving unary
// and client-streaming calls) and StreamResponse produces any number of
// response messages followed by a terminal status (serving server-streaming
// and bidirectional calls).
//
// Each registered response carries a request handler which observes every
// part the client sends: the synthesized request head, each request message,
// and the end of the request stream, in that order. Response production is
// driven separately by the test through the response object returned from
// registration. Making a call against a path with nothing registered still
// returns a call object; the missing response is reported as that call's
// outcome rather than as an error from the factory, so tests assert on call
// failure through the same path as call success.
//
// Typical workflow:
//  1. Create a Channel.
//  2. Register fake responses for the paths under test.
//  3. Point the generated client (or the test itself) at the channel and
//     make calls.
//  4. Drive responses through the registered response objects and assert.
//
// The channel and its registry are not safe for concurrent use. A test that
// registers or dequeues from multiple goroutines has to serialize access
// itself; the returned call objects can be awaited from other goroutines.
//
// Check examples for more details.
package fakerpc
