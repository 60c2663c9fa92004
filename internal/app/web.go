package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/rtk_link/internal/config"
	"github.com/relabs-tech/rtk_link/internal/rtk"
	"github.com/relabs-tech/rtk_link/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// RunWeb serves the base-station status page: last fix and survey-in state
// over JSON endpoints, plus a websocket that streams each new fix.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu         sync.RWMutex
		lastFix    rtk.NavFix
		haveFix    bool
		lastSurvey json.RawMessage
	)

	var (
		clientsMu sync.Mutex
		clients   = map[*websocket.Conn]bool{}
	)

	broadcast := func(payload []byte) {
		clientsMu.Lock()
		defer clientsMu.Unlock()
		for conn := range clients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients, conn)
			}
		}
	}

	// 1) Connect to MQTT broker
	client, err := telemetry.Connect(cfg.MQTTBroker, cfg.MQTTClientIDWeb)
	if err != nil {
		return err
	}

	// 2) Subscribe to fix and survey topics, cache the latest of each
	fixToken := client.Subscribe(cfg.TopicFix, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var fix rtk.NavFix
		if err := json.Unmarshal(msg.Payload(), &fix); err != nil {
			log.Printf("web: fix unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastFix = fix
		haveFix = true
		mu.Unlock()
		broadcast(msg.Payload())
	})
	fixToken.Wait()
	if fixToken.Error() != nil {
		return fixToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicFix)

	surveyToken := client.Subscribe(cfg.TopicSurvey, 0, func(_ mqtt.Client, msg mqtt.Message) {
		payload := make(json.RawMessage, len(msg.Payload()))
		copy(payload, msg.Payload())
		mu.Lock()
		lastSurvey = payload
		mu.Unlock()
	})
	surveyToken.Wait()
	if surveyToken.Error() != nil {
		return surveyToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicSurvey)

	// 3) JSON API endpoints
	http.HandleFunc("/api/fix", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveFix {
			http.Error(w, "no fix yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastFix); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/survey", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if lastSurvey == nil {
			http.Error(w, "no survey status yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(lastSurvey)
	})

	// 4) Websocket live fix stream
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		clientsMu.Lock()
		clients[conn] = true
		clientsMu.Unlock()
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
