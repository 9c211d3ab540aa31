// Package apiserver provides an in-process fake MyGeotab endpoint for
// tests. It speaks the request/response envelope of the real API: scripted
// results or faults go out, and every received envelope is captured for
// assertions.
package apiserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
)

const endpointPath = "/apiv1"

// Server is a fake MyGeotab API endpoint backed by httptest.
type Server struct {
	httpServer *httptest.Server
	mu         sync.Mutex
	results    map[string]json.RawMessage
	fault      *Fault
	statusCode int
	rawBody    []byte
	requests   []CapturedRequest
}

// Fault is a scripted server-reported error.
type Fault struct {
	Name    string
	Message string
}

// CapturedRequest is one decoded request envelope received by the server.
type CapturedRequest struct {
	Method      string         `json:"method"`
	ContentType string         `json:"-"`
	Params      capturedParams `json:"params"`
}

type capturedParams struct {
	TypeName    string         `json:"typeName"`
	Credentials map[string]any `json:"credentials"`
	Search      map[string]any `json:"search"`
	FromVersion string         `json:"fromVersion"`
}

// TypeName returns the typeName parameter of the captured request.
func (r CapturedRequest) TypeName() string { return r.Params.TypeName }

// Search returns the search parameter of the captured request.
func (r CapturedRequest) Search() map[string]any { return r.Params.Search }

// FromVersion returns the fromVersion parameter of the captured request.
func (r CapturedRequest) FromVersion() string { return r.Params.FromVersion }

// Credentials returns the credentials object of the captured request.
func (r CapturedRequest) Credentials() map[string]any { return r.Params.Credentials }

// New starts a fake API server. Callers must Close it.
func New() *Server {
	s := &Server{
		results: make(map[string]json.RawMessage),
	}

	router := mux.NewRouter()
	router.HandleFunc(endpointPath, s.handleCall).Methods(http.MethodPost)

	s.httpServer = httptest.NewServer(router)

	return s
}

// Server returns the address to use as the connection server; it carries
// the http scheme of the test listener.
func (s *Server) Server() string {
	return s.httpServer.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// RespondWith scripts the result array returned for Get calls on the given
// type name. Records are serialized in the given order.
func (s *Server) RespondWith(typeName string, records ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results["Get/"+typeName] = mustMarshal(records)
}

// RespondToFeedWith scripts the feed payload returned for GetFeed calls on
// the given type name.
func (s *Server) RespondToFeedWith(typeName string, toVersion string, records ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results["GetFeed/"+typeName] = mustMarshal(map[string]any{
		"data":      records,
		"toVersion": toVersion,
	})
}

// FailWith scripts a server-reported fault for every subsequent call.
func (s *Server) FailWith(name string, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fault = &Fault{Name: name, Message: message}
}

// RespondWithStatus makes the server reply with the given HTTP status and
// raw body for every subsequent call, bypassing envelope handling.
func (s *Server) RespondWithStatus(statusCode int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statusCode = statusCode
	s.rawBody = body
}

// Requests returns a copy of all captured request envelopes in arrival order.
func (s *Server) Requests() []CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]CapturedRequest, len(s.requests))
	copy(requests, s.requests)

	return requests
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var request CapturedRequest

	decodeErr := json.NewDecoder(r.Body).Decode(&request)
	request.ContentType = r.Header.Get("Content-Type")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, request)

	w.Header().Set("Content-Type", "application/json")

	switch {
	case s.statusCode != 0:
		w.WriteHeader(s.statusCode)
		_, _ = w.Write(s.rawBody)

	case decodeErr != nil:
		s.writeFault(w, Fault{Name: "JSONRpcError", Message: "malformed request envelope"})

	case s.fault != nil:
		s.writeFault(w, *s.fault)

	default:
		s.writeResult(w, request)
	}
}

func (s *Server) writeResult(w http.ResponseWriter, request CapturedRequest) {
	result, scripted := s.results[request.Method+"/"+request.Params.TypeName]
	if !scripted {
		result = json.RawMessage(`[]`)
		if request.Method == "GetFeed" {
			result = json.RawMessage(`{"data":[],"toVersion":""}`)
		}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
}

func (s *Server) writeFault(w http.ResponseWriter, fault Fault) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": fault.Message,
			"errors": []map[string]any{
				{"name": fault.Name, "message": fault.Message},
			},
		},
	})
}

func mustMarshal(v any) json.RawMessage {
	raw, marshalErr := json.Marshal(v)
	if marshalErr != nil {
		panic(marshalErr)
	}

	return raw
}
