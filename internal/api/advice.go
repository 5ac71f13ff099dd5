package api

import (
	"net/http"

	"github.com/keyfob-dev/keyfob/apiclient"
	"github.com/keyfob-dev/keyfob/internal/util/rest"

	"github.com/rs/zerolog/log"
)

// HandleAdvice returns advisory text from the configured chat completion
// service. The TOTP engine knows nothing about this; it is purely a
// collaborator surface.
func HandleAdvice(w http.ResponseWriter, r *http.Request) {
	if adv == nil {
		rest.WriteError(http.StatusServiceUnavailable, w, r, "Advisor is not enabled")
		return
	}

	request := apiclient.AdviceRequest{}
	if err := rest.DecodeRequestBody(w, r, &request); err != nil {
		return
	}

	advice, err := adv.Advise(r.Context(), request.Topic)
	if err != nil {
		log.Error().Err(err).Msg("advisor request failed")
		rest.WriteError(http.StatusBadGateway, w, r, "Advisor request failed")
		return
	}

	rest.WriteResponse(http.StatusOK, w, r, apiclient.AdviceResponse{Advice: advice})
}
