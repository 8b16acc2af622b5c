package fakerpc_test

import (
	"testing"

	fakerpc "github.com/plexsysio/go-fakerpc"
	"google.golang.org/grpc/metadata"
)

type greetReq struct {
	Name string
}

type greetResp struct {
	Greeting string
}

type sumReq struct {
	Values []int
}

type sumResp struct {
	Total int
}

func TestRequestHead(t *testing.T) {
	t.Parallel()

	t.Run("fixed placeholders", func(t *testing.T) {
		t.Parallel()

		ch := fakerpc.New()
		path := "/Greeter/Hello"

		var head *fakerpc.RequestHead
		resp := fakerpc.NewUnaryResponse[greetReq, greetResp](ch, path, func(p fakerpc.RequestPart[greetReq]) {
			if p.Kind == fakerpc.PartHead {
				head = p.Head
			}
		})

		_ = fakerpc.MakeUnaryCall[greetReq, greetResp](ch, path, &greetReq{Name: "test"}, fakerpc.CallOptions{})

		if head == nil {
			t.Fatal("expected request head")
		}
		if head.Scheme != "http" {
			t.Fatalf("unexpected scheme: got %s, want %s", head.Scheme, "http")
		}
		if head.Host != "localhost" {
			t.Fatalf("unexpected host: got %s, want %s", head.Host, "localhost")
		}
		if head.Path != path {
			t.Fatalf("unexpected path: got %s, want %s", head.Path, path)
		}
		if head.RequestID == "" {
			t.Fatal("expected generated request id")
		}

		_ = resp.SendResponse(&greetResp{Greeting: "test"})
	})

	t.Run("request id provider and metadata", func(t *testing.T) {
		t.Parallel()

		ch := fakerpc.New()
		path := "/Greeter/Hello"

		var head *fakerpc.RequestHead
		_ = fakerpc.NewUnaryResponse[greetReq, greetResp](ch, path, func(p fakerpc.RequestPart[greetReq]) {
			if p.Kind == fakerpc.PartHead {
				head = p.Head
			}
		})

		opts := fakerpc.CallOptions{
			RequestIDProvider: func() string { return "req-1" },
			Metadata:          metadata.Pairs("authorization", "Bearer test"),
		}

		_ = fakerpc.MakeUnaryCall[greetReq, greetResp](ch, path, &greetReq{Name: "test"}, opts)

		if head == nil {
			t.Fatal("expected request head")
		}
		if head.RequestID != "req-1" {
			t.Fatalf("unexpected request id: got %s, want %s", head.RequestID, "req-1")
		}
		if got := head.Options.Metadata.Get("authorization"); len(got) != 1 || got[0] != "Bearer test" {
			t.Fatalf("unexpected metadata: got %v", got)
		}
	})
}

func TestChannelClose(t *testing.T) {
	t.Parallel()

	ch := fakerpc.New()
	if err := ch.Close(); err != nil {
		t.Fatalf("unexpected error: got %v", err)
	}
}

func TestMethodPath(t *testing.T) {
	t.Parallel()

	t.Run("default version", func(t *testing.T) {
		t.Parallel()

		got := fakerpc.MethodPath("Greeter", "Hello")
		if got != "Greeter/0.0.0/Hello" {
			t.Fatalf("unexpected path: got %s, want %s", got, "Greeter/0.0.0/Hello")
		}
	})

	t.Run("explicit version", func(t *testing.T) {
		t.Parallel()

		got := fakerpc.MethodPath("Greeter", "Hello", "1.2.0")
		if got != "Greeter/1.2.0/Hello" {
			t.Fatalf("unexpected path: got %s, want %s", got, "Greeter/1.2.0/Hello")
		}
	})
}
