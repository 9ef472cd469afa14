package parser

import (
	"encoding/json"

	"github.com/arun278627862/secure-quiz/internal/state"
)

type CreatePollRequest struct {
	Question string           `json:"question"`
	Type     string           `json:"type"`
	Options  *state.OptionMap `json:"options"`
}

type VoteRequest struct {
	Option string `json:"option"`
}

type BuzzRequest struct {
	Team string `json:"team"`
}

type ViewerMessage struct {
	Event string `json:"event"`
	Room  string `json:"room"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type BuzzResponse struct {
	Success bool   `json:"success"`
	Team    string `json:"team"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ParseCreatePollRequest(data []byte) (*CreatePollRequest, error) {
	pollRequest := &CreatePollRequest{Type: state.POLL_MULTIPLE_CHOICE}
	err := json.Unmarshal(data, pollRequest)
	return pollRequest, err
}

func ParseVoteRequest(data []byte) (*VoteRequest, error) {
	voteRequest := &VoteRequest{}
	err := json.Unmarshal(data, voteRequest)
	return voteRequest, err
}

func ParseBuzzRequest(data []byte) (*BuzzRequest, error) {
	buzzRequest := &BuzzRequest{}
	err := json.Unmarshal(data, buzzRequest)
	return buzzRequest, err
}

// ParseUpdateTeamsRequest reads the raw team-id to display-name mapping the
// admin panel posts.
func ParseUpdateTeamsRequest(data []byte) (*state.OptionMap, error) {
	teams := state.NewOptionMap()
	err := json.Unmarshal(data, teams)
	return teams, err
}
