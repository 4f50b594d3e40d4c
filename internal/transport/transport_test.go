package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
)

// echoServer upgrades and echoes every frame it receives, letting the
// websocket transport tests exercise the real gorilla/websocket dialer
// without a real browser.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	return srv
}

func wsURL(httpURL string) string {
	if len(httpURL) >= 7 && httpURL[:7] == "http://" {
		return "ws://" + httpURL[7:]
	}
	return httpURL
}

func TestWebsocketSendTextRoundTrip(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	tr, err := WebsocketDialer{}.Dial(context.Background(), wsURL(srv.URL))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer tr.Close()

	if err := tr.SendText([]byte(`{"id":1}`)); err != nil {
		t.Fatalf("send text: %v", err)
	}

	frame, err := tr.Recv()
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if frame.Kind != Text {
		t.Fatalf("expected text frame, got kind %v", frame.Kind)
	}
	if string(frame.Data) != `{"id":1}` {
		t.Fatalf("unexpected echo payload: %s", frame.Data)
	}
}

func TestWebsocketRecvAfterCloseReturnsErrClosed(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	tr, err := WebsocketDialer{}.Dial(context.Background(), wsURL(srv.URL))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	tr.Close()

	if _, err := tr.Recv(); err == nil {
		t.Fatal("expected error after close")
	}
}
