package server

import (
	"net/http"

	"github.com/arun278627862/secure-quiz/internal/parser"
	"github.com/arun278627862/secure-quiz/internal/utils"
)

func (s *ShowServer) GetTeams(writer http.ResponseWriter, request *http.Request) {
	s.sendJSON(writer, s.Control.Teams(), http.StatusOK)
}

func (s *ShowServer) UpdateTeams(writer http.ResponseWriter, request *http.Request) {
	data, err := s.ReadRequestBody(request)
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	teams, err := parser.ParseUpdateTeamsRequest(data)
	if err != nil {
		s.Logger.Error("Failed to parse teams request", err)
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := s.Control.UpdateTeams(*teams); err != nil {
		s.sendError(writer, err)
		return
	}
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}

func (s *ShowServer) StartGame(writer http.ResponseWriter, request *http.Request) {
	s.Logger.Info("Admin is starting the game")
	s.Control.StartGame()
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}

func (s *ShowServer) StopGame(writer http.ResponseWriter, request *http.Request) {
	s.Logger.Info("Admin is stopping the game")
	s.Control.StopGame()
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}

func (s *ShowServer) ResetGame(writer http.ResponseWriter, request *http.Request) {
	s.Logger.Info("Admin is resetting the game")
	s.Control.ResetGame()
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}

func (s *ShowServer) BuzzIn(writer http.ResponseWriter, request *http.Request) {
	data, err := s.ReadRequestBody(request)
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	buzzRequest, err := parser.ParseBuzzRequest(data)
	if err != nil {
		s.Logger.Error("Failed to parse buzz request", err)
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	teamName, err := s.Control.BuzzIn(buzzRequest.Team)
	if err != nil {
		s.sendError(writer, err)
		return
	}
	s.sendJSON(writer, parser.BuzzResponse{Success: true, Team: teamName}, http.StatusOK)
}

func (s *ShowServer) GetLogs(writer http.ResponseWriter, request *http.Request) {
	s.sendJSON(writer, s.Control.RecentLogs(0), http.StatusOK)
}

func (s *ShowServer) GetGameState(writer http.ResponseWriter, request *http.Request) {
	s.sendJSON(writer, s.Control.Snapshot(), http.StatusOK)
}

func (s *ShowServer) GetPoll(writer http.ResponseWriter, request *http.Request) {
	s.sendJSON(writer, s.Control.Poll(), http.StatusOK)
}

func (s *ShowServer) CreatePoll(writer http.ResponseWriter, request *http.Request) {
	data, err := s.ReadRequestBody(request)
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	pollRequest, err := parser.ParseCreatePollRequest(data)
	if err != nil {
		s.Logger.Error("Failed to parse create poll request", err)
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	if _, err := s.Control.CreatePoll(pollRequest.Question, pollRequest.Type, pollRequest.Options); err != nil {
		s.sendError(writer, err)
		return
	}
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}

func (s *ShowServer) Vote(writer http.ResponseWriter, request *http.Request) {
	data, err := s.ReadRequestBody(request)
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	voteRequest, err := parser.ParseVoteRequest(data)
	if err != nil {
		s.Logger.Error("Failed to parse vote request", err)
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	deviceId := utils.DeviceId(request)
	if _, err := s.Control.Vote(voteRequest.Option, deviceId); err != nil {
		s.sendError(writer, err)
		return
	}
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}

func (s *ShowServer) StopPoll(writer http.ResponseWriter, request *http.Request) {
	s.Logger.Info("Admin is stopping the poll")
	s.Control.StopPoll()
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}

func (s *ShowServer) ResetPoll(writer http.ResponseWriter, request *http.Request) {
	s.Logger.Info("Admin is resetting the poll")
	s.Control.ResetPoll()
	s.sendJSON(writer, parser.SuccessResponse{Success: true}, http.StatusOK)
}
