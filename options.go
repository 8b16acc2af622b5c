package fakerpc

import (
	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// CallOptions carries the per-call options a caller hands to the channel.
type CallOptions struct {
	// RequestIDProvider produces the request identifier placed in the
	// synthesized request head. Defaults to a random UUID.
	RequestIDProvider func() string
	// Metadata is carried on the request head unchanged.
	Metadata metadata.MD
}

func (o CallOptions) requestID() string {
	if o.RequestIDProvider != nil {
		return o.RequestIDProvider()
	}
	return uuid.NewString()
}

// RequestHead is the synthesized header delivered to a fake response ahead
// of the request body. Scheme and host hold fixed placeholder values as no
// real connection exists.
type RequestHead struct {
	Scheme    string
	Host      string
	Path      string
	RequestID string
	Options   CallOptions
}
