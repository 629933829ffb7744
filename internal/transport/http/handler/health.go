package handler

import "net/http"

// Root answers the bare liveness probe browsers and load balancers hit.
func Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "NEXORA server running"})
}
