package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/peppercorn-robotics/gomaestro/onboard"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// telemetryInterval paces the position polling. Each frame costs a full
// request/response round trip per axis on the serial link, so this should
// stay well above the link's latency.
const telemetryInterval = 500 * time.Millisecond

// PositionsHandler streams a snapshot of every axis position over a
// websocket until the client goes away.
func PositionsHandler(robot *onboard.Robot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}
		defer c.Close()

		ticker := time.NewTicker(telemetryInterval)
		defer ticker.Stop()

		for range ticker.C {
			positions, err := robot.Positions()
			if err != nil {
				log.Println("positions:", err)
				break
			}
			if err = c.WriteJSON(positions); err != nil {
				log.Println("write:", err)
				break
			}
		}
	}
}
