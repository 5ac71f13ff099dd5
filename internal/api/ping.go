package api

import (
	"net/http"

	"github.com/keyfob-dev/keyfob/apiclient"
	"github.com/keyfob-dev/keyfob/build"
	"github.com/keyfob-dev/keyfob/internal/util/rest"
)

func HandlePing(w http.ResponseWriter, r *http.Request) {
	rest.WriteResponse(http.StatusOK, w, r, apiclient.PingResponse{
		Status:  true,
		Version: build.Version,
	})
}
