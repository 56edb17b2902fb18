package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
)

// Connects to the market event feed and prints every event until interrupted.
func main() {
	url := os.Getenv("FEED_URL")
	if url == "" {
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = "8080"
		}
		url = "ws://localhost:" + port + "/ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()
	log.Printf("connected to %s\n", url)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			var pretty map[string]any
			if err := json.Unmarshal(raw, &pretty); err != nil {
				log.Printf("event (raw): %s", raw)
				continue
			}
			log.Printf("event: type=%v data=%v", pretty["type"], pretty["data"])
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	case <-done:
	}
}
