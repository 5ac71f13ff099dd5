package api

import (
	"errors"
	"net/http"

	"github.com/keyfob-dev/keyfob/apiclient"
	"github.com/keyfob-dev/keyfob/internal/totp"
	"github.com/keyfob-dev/keyfob/internal/util/rest"
	"github.com/keyfob-dev/keyfob/internal/util/validate"

	"github.com/rs/zerolog/log"
)

// HandleGenerateCode produces the current code for a secret supplied in the
// request. The secret is decoded best-effort; an undecodable secret or a
// hash failure is reported with the matching sentinel in the body so the
// caller can render the result directly. Nothing from the request is kept.
func HandleGenerateCode(w http.ResponseWriter, r *http.Request) {
	request := apiclient.CodeRequest{}
	if err := rest.DecodeRequestBody(w, r, &request); err != nil {
		return
	}

	if request.Window == 0 {
		request.Window = totp.DefaultWindow
	}
	if !validate.Window(int(request.Window)) {
		rest.WriteError(http.StatusBadRequest, w, r, "Invalid window length")
		return
	}

	code, err := totp.GenerateCode(request.Secret, request.Window)
	response := apiclient.CodeResponse{
		Code:             totp.DisplayCode(code, err),
		SecondsRemaining: totp.TimeRemaining(request.Window),
		Window:           request.Window,
	}

	switch {
	case err == nil:
		rest.WriteResponse(http.StatusOK, w, r, response)
	case errors.Is(err, totp.ErrEmptyKey):
		rest.WriteResponse(http.StatusUnprocessableEntity, w, r, response)
	default:
		log.Error().Err(err).Msg("code generation failed")
		rest.WriteResponse(http.StatusInternalServerError, w, r, response)
	}
}

// HandleCheckSecret runs the strict validation used before a secret is
// accepted, unlike generation which tolerates stray characters.
func HandleCheckSecret(w http.ResponseWriter, r *http.Request) {
	request := apiclient.CheckSecretRequest{}
	if err := rest.DecodeRequestBody(w, r, &request); err != nil {
		return
	}

	rest.WriteResponse(http.StatusOK, w, r, apiclient.CheckSecretResponse{
		Valid: totp.ValidSecret(request.Secret),
	})
}
