package api

import (
	"net/http"
	"time"

	"github.com/keyfob-dev/keyfob/internal/stream"
	"github.com/keyfob-dev/keyfob/internal/util/validate"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	HandshakeTimeout: 10 * time.Second,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamRequest is a control message from the websocket client.
type streamRequest struct {
	Action string `json:"action"`
	Label  string `json:"label"`
	Secret string `json:"secret,omitempty"`
	Window uint   `json:"window,omitempty"`
}

// HandleCodeStream upgrades to a websocket and streams codes for the
// secrets the client subscribes to. The current code is sent on subscribe
// and a fresh one at the start of every window. Secrets live only in the
// connection's subscription table and die with it.
func HandleCodeStream(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	hub := stream.GetHub()
	client := hub.Register()

	logger := log.With().Str("client_id", client.ID()).Logger()
	logger.Debug().Msg("code stream opened")

	// Writer side: pump hub updates to the socket.
	go func() {
		for update := range client.Updates() {
			if err := ws.WriteJSON(update); err != nil {
				logger.Debug().Err(err).Msg("code stream write failed")
				ws.Close()
				return
			}
		}
		ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		ws.Close()
	}()

	// Reader side: process subscribe / unsubscribe messages until the
	// connection drops.
	for {
		request := streamRequest{}
		if err := ws.ReadJSON(&request); err != nil {
			break
		}

		if !validate.Label(request.Label) {
			logger.Debug().Msg("ignoring stream request with bad label")
			continue
		}

		switch request.Action {
		case "subscribe":
			client.Subscribe(stream.Subscription{
				Label:  request.Label,
				Secret: request.Secret,
				Window: request.Window,
			})
		case "unsubscribe":
			client.Unsubscribe(request.Label)
		default:
			logger.Debug().Str("action", request.Action).Msg("ignoring unknown stream action")
		}
	}

	hub.Unregister(client)
	logger.Debug().Msg("code stream closed")
}
