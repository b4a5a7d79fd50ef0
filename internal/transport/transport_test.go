package transport

import (
	"context"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, tr *Transport, want EventType, deadline time.Duration) Event {
	t.Helper()
	end := time.Now().Add(deadline)
	for time.Now().Before(end) {
		e := tr.Poll(50 * time.Millisecond)
		if e.Type == want {
			return e
		}
	}
	t.Fatalf("timed out waiting for event type %d", want)
	return Event{}
}

func TestListenDialSendReceive(t *testing.T) {
	server := New(1000, 100)
	if err := server.Listen("127.0.0.1:18732"); err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer server.Shutdown(context.Background(), time.Second)

	client := New(1000, 100)
	clientConn, err := client.Dial(context.Background(), "ws://127.0.0.1:18732/ws")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	connectEvt := waitForEvent(t, server, EventConnect, 2*time.Second)

	if err := client.Send(clientConn, []byte("hello")); err != nil {
		t.Fatalf("client send: %v", err)
	}
	recvEvt := waitForEvent(t, server, EventReceive, 2*time.Second)
	if string(recvEvt.Payload) != "hello" {
		t.Fatalf("expected payload 'hello', got %q", recvEvt.Payload)
	}
	if recvEvt.Conn != connectEvt.Conn {
		t.Fatalf("expected receive on the same conn that connected")
	}

	if err := server.Send(connectEvt.Conn, []byte("world")); err != nil {
		t.Fatalf("server send: %v", err)
	}
	clientRecv := waitForEvent(t, client, EventReceive, 2*time.Second)
	if string(clientRecv.Payload) != "world" {
		t.Fatalf("expected payload 'world', got %q", clientRecv.Payload)
	}

	if err := client.Disconnect(clientConn); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	waitForEvent(t, server, EventDisconnect, 2*time.Second)
}

func TestPollNoneWhenIdle(t *testing.T) {
	tr := New(100, 10)
	e := tr.Poll(0)
	if e.Type != EventNone {
		t.Fatalf("expected EventNone on an idle transport, got %d", e.Type)
	}
}
