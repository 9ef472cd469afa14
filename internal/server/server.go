package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/arun278627862/secure-quiz/internal/db"
	"github.com/arun278627862/secure-quiz/internal/logger"
	"github.com/arun278627862/secure-quiz/internal/parser"
	"github.com/arun278627862/secure-quiz/internal/state"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const HTTP_API_PREFIX = "/api"

type ShowServer struct {
	Control     *state.Controller
	Logger      logger.Logger
	port        string
	wssUpgrader websocket.Upgrader
	Router      *mux.Router
	Hub         *Hub
	archive     db.Archive
}

func NewShowServer(port string) (*ShowServer, error) {
	dataFile := os.Getenv("QUIZ_DATA_FILE")
	if len(dataFile) == 0 {
		dataFile = "data.json"
	}
	dbName := os.Getenv("QUIZ_DB")
	if len(dbName) == 0 {
		dbName = "quizlog"
	}
	archive, err := db.SetupDB(dbName)
	if err != nil {
		return nil, err
	}
	hub := NewHub()
	control, err := state.NewController(state.NewFileStore(dataFile), archive, hub)
	if err != nil {
		return nil, err
	}
	ss := &ShowServer{
		Control: control,
		Logger:  logger.New("api_server"),
		port:    port,
		wssUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Router:  mux.NewRouter(),
		Hub:     hub,
		archive: archive,
	}
	ss.registerRoutes()
	return ss, nil
}

func (s *ShowServer) registerRoutes() {
	api := s.Router.PathPrefix(HTTP_API_PREFIX).Subrouter()
	api.HandleFunc("/teams", s.GetTeams).Methods("GET")
	api.HandleFunc("/teams", s.UpdateTeams).Methods("POST")
	api.HandleFunc("/start", s.StartGame).Methods("POST")
	api.HandleFunc("/stop", s.StopGame).Methods("POST")
	api.HandleFunc("/reset", s.ResetGame).Methods("POST")
	api.HandleFunc("/buzz", s.BuzzIn).Methods("POST")
	api.HandleFunc("/logs", s.GetLogs).Methods("GET")
	api.HandleFunc("/game-state", s.GetGameState).Methods("GET")
	api.HandleFunc("/poll", s.GetPoll).Methods("GET")
	api.HandleFunc("/poll", s.CreatePoll).Methods("POST")
	api.HandleFunc("/poll/vote", s.Vote).Methods("POST")
	api.HandleFunc("/poll/stop", s.StopPoll).Methods("POST")
	api.HandleFunc("/poll/reset", s.ResetPoll).Methods("POST")
	s.Router.HandleFunc("/ws", s.HandleViewer)
}

func (s *ShowServer) Run() {
	s.Logger.Info(fmt.Sprintf("Starting server on port %s", s.port))
	sigtermHandler := make(chan os.Signal, 1)
	signal.Notify(sigtermHandler, os.Interrupt)
	go func() {
		<-sigtermHandler
		s.Shutdown()
		os.Exit(0)
	}()
	if err := http.ListenAndServe(fmt.Sprintf(":%s", s.port), s.Router); err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to start server on port %s", s.port), err)
		return
	}
}

func (s *ShowServer) Shutdown() {
	s.Logger.Info("Shutting down server....")
	s.archive.CloseConnection()
	s.Logger.Info("Goodbye !")
}

func (s *ShowServer) UpgradeToWebsocket(writer http.ResponseWriter, request *http.Request) *websocket.Conn {
	conn, err := s.wssUpgrader.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to upgrade to WS connection", err)
		return nil
	}
	return conn
}

// HandleViewer owns one viewer connection: push the current snapshot, then
// serve join_room/leave_room messages until the peer goes away.
func (s *ShowServer) HandleViewer(writer http.ResponseWriter, request *http.Request) {
	wssConn := s.UpgradeToWebsocket(writer, request)
	if wssConn == nil {
		return
	}
	session := s.Hub.Add(wssConn)
	if err := session.Send("state_update", s.Control.Snapshot()); err != nil {
		s.Logger.Error("Failed to push snapshot to new viewer", err)
		s.Hub.Remove(session.Id)
		return
	}
	for {
		message := &parser.ViewerMessage{}
		if err := wssConn.ReadJSON(message); err != nil {
			s.Logger.Info("Viewer disconnected")
			s.Hub.Remove(session.Id)
			return
		}
		switch message.Event {
		case "join_room":
			s.Hub.JoinRoom(session.Id, message.Room)
		case "leave_room":
			s.Hub.LeaveRoom(session.Id, message.Room)
		default:
			s.Logger.Debug(fmt.Sprintf("Ignoring viewer message %s", message.Event))
		}
	}
}

func (s *ShowServer) ReadRequestBody(request *http.Request) ([]byte, error) {
	bodyReader := request.Body
	bytesRead, err := io.ReadAll(bodyReader)
	if err != nil {
		s.Logger.Error("Failed to read request body", err)
		return nil, err
	}
	return bytesRead, nil
}

func (s *ShowServer) sendResponse(writer http.ResponseWriter, responseBody []byte, status int) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if responseBody == nil {
		return
	}
	_, err := writer.Write(responseBody)
	if err != nil {
		s.Logger.Info("Failed to write response body")
	}
}

func (s *ShowServer) sendJSON(writer http.ResponseWriter, payload any, status int) {
	responseBody, err := json.Marshal(payload)
	if err != nil {
		s.sendResponse(writer, nil, http.StatusInternalServerError)
		return
	}
	s.sendResponse(writer, responseBody, status)
}

// sendError surfaces validation and conflict errors as a structured 400.
// Nothing in the API maps to any other failure status.
func (s *ShowServer) sendError(writer http.ResponseWriter, err error) {
	s.sendJSON(writer, parser.ErrorResponse{Error: err.Error()}, http.StatusBadRequest)
}
