package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is open for the API as a whole.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Conn is a websocket connection safe for concurrent writers.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &Conn{ws: ws}, nil
}

func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

// ReadUntilClosed discards client frames and returns when the peer goes
// away. Pings are answered by the library.
func (c *Conn) ReadUntilClosed() error {
	for {
		if _, _, err := c.ws.NextReader(); err != nil {
			return err
		}
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.mu.Unlock()
	return c.ws.Close()
}
