package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"intelplatform/internal/logger"
	"intelplatform/internal/utils"
	"intelplatform/models"
)

// assistantChat runs one assistant exchange against the requested domain
// persona.
//
// By default the reply is returned atomically as JSON. With ?stream=1 the
// response is a text/event-stream and the reply fragments are relayed as
// they arrive from the upstream model, terminated by a "[DONE]" event.
func (h *Handler) assistantChat(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var chatRequest models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatRequest); err != nil {
		log.Err(err).Str("func", "*Handler.assistantChat").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, ok := sessionID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if r.URL.Query().Get("stream") == "1" {
		h.assistantChatStream(w, r, session, chatRequest)
		return
	}

	reply, err := h.services.AssistantService.Converse(r.Context(), session, chatRequest.Domain, chatRequest.Message)
	if err != nil {
		log.Err(err).Str("func", "*Handler.assistantChat").Str("domain", string(chatRequest.Domain)).Msg("assistant exchange failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ChatResponse{Domain: chatRequest.Domain, Reply: reply}, http.StatusOK)
}

// assistantChatStream relays the reply fragments over server-sent events.
// Errors that occur before the first fragment map to regular HTTP statuses;
// a mid-stream failure terminates the event stream with an error event,
// since the status line is already on the wire.
func (h *Handler) assistantChatStream(w http.ResponseWriter, r *http.Request, session int64, chatRequest models.ChatRequest) {
	log := logger.FromRequest(r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error().Str("func", "*Handler.assistantChatStream").Msg("response writer does not support streaming")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	stream, err := h.services.AssistantService.ConverseStream(r.Context(), session, chatRequest.Domain, chatRequest.Message)
	if err != nil {
		log.Err(err).Str("func", "*Handler.assistantChatStream").Str("domain", string(chatRequest.Domain)).Msg("assistant stream failed to start")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		fragment, more := stream.Next()
		if !more {
			break
		}

		data, marshalErr := json.Marshal(fragment)
		if marshalErr != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	if streamErr := stream.Err(); streamErr != nil {
		log.Err(streamErr).Str("func", "*Handler.assistantChatStream").Msg("assistant stream failed mid-flight")
		fmt.Fprintf(w, "event: error\ndata: %q\n\n", "assistant exchange failed")
		flusher.Flush()
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// assistantClear drops the conversation history of one domain for the
// calling session.
func (h *Handler) assistantClear(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var chatRequest models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatRequest); err != nil {
		log.Err(err).Str("func", "*Handler.assistantClear").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, ok := sessionID(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AssistantService.Clear(r.Context(), session, chatRequest.Domain); err != nil {
		log.Err(err).Str("func", "*Handler.assistantClear").Str("domain", string(chatRequest.Domain)).Msg("error clearing assistant history")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}
