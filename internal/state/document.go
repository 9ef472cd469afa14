package state

// Poll types supported by the controller.
const (
	POLL_MULTIPLE_CHOICE = "multiple_choice"
	POLL_YES_NO          = "yes_no"
	POLL_RATING          = "rating"
)

const REQUIRED_TEAM_COUNT = 6

// Document is the whole persisted application state. Field names match the
// data file written by earlier deployments and must not change.
type Document struct {
	GameState GameState  `json:"game_state"`
	Teams     OptionMap  `json:"teams"`
	Logs      []LogEntry `json:"logs"`
	Poll      PollState  `json:"poll"`
}

type GameState struct {
	Active      bool    `json:"active"`
	CurrentTeam *string `json:"current_team"`
	RoundNumber int     `json:"round_number"`
	Timestamp   *string `json:"timestamp"`
}

type PollState struct {
	Active           bool           `json:"active"`
	Question         string         `json:"question"`
	Type             string         `json:"type"`
	Options          OptionMap      `json:"options"`
	Votes            map[string]int `json:"votes"`
	VotedDevices     []string       `json:"voted_devices"`
	Winner           *string        `json:"winner"`
	WinnerPercentage float64        `json:"winner_percentage"`
	TotalVotes       int            `json:"total_votes"`
	StartedAt        *string        `json:"started_at"`
	EndedAt          *string        `json:"ended_at"`
}

type LogEntry struct {
	Timestamp string  `json:"timestamp"`
	Type      string  `json:"type"`
	Team      *string `json:"team"`
	Details   string  `json:"details"`
	Round     int     `json:"round"`
}

// Snapshot is the full state pushed to a newly connected viewer and returned
// by the game-state endpoint.
type Snapshot struct {
	GameState GameState `json:"game_state"`
	Teams     OptionMap `json:"teams"`
	Poll      PollState `json:"poll"`
}

// PollResult is the payload of poll_vote_update and poll_stopped broadcasts.
type PollResult struct {
	Votes            map[string]int `json:"votes"`
	TotalVotes       int            `json:"total_votes"`
	Winner           *string        `json:"winner"`
	WinnerPercentage float64        `json:"winner_percentage"`
	Options          OptionMap      `json:"options"`
}

// BuzzEvent is the payload of the team_buzzed broadcast.
type BuzzEvent struct {
	Team      string `json:"team"`
	TeamName  string `json:"team_name"`
	Timestamp string `json:"timestamp"`
}

func DefaultTeams() OptionMap {
	teams := NewOptionMap()
	teams.Set("team1", "Team 1")
	teams.Set("team2", "Team 2")
	teams.Set("team3", "Team 3")
	teams.Set("team4", "Team 4")
	teams.Set("team5", "Team 5")
	teams.Set("team6", "Team 6")
	return *teams
}

func DefaultPoll() PollState {
	options := NewOptionMap()
	options.Set("A", "Option A")
	options.Set("B", "Option B")
	options.Set("C", "Option C")
	options.Set("D", "Option D")
	return PollState{
		Type:         POLL_MULTIPLE_CHOICE,
		Options:      *options,
		Votes:        map[string]int{"A": 0, "B": 0, "C": 0, "D": 0},
		VotedDevices: []string{},
	}
}

func DefaultDocument() *Document {
	return &Document{
		GameState: GameState{RoundNumber: 1},
		Teams:     DefaultTeams(),
		Logs:      []LogEntry{},
		Poll:      DefaultPoll(),
	}
}

func (p *PollState) clone() PollState {
	clone := *p
	clone.Options = p.Options.Clone()
	clone.Votes = make(map[string]int, len(p.Votes))
	for option, count := range p.Votes {
		clone.Votes[option] = count
	}
	clone.VotedDevices = append([]string{}, p.VotedDevices...)
	clone.Winner = clonePtr(p.Winner)
	clone.StartedAt = clonePtr(p.StartedAt)
	clone.EndedAt = clonePtr(p.EndedAt)
	return clone
}

func (g *GameState) clone() GameState {
	clone := *g
	clone.CurrentTeam = clonePtr(g.CurrentTeam)
	clone.Timestamp = clonePtr(g.Timestamp)
	return clone
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	value := *s
	return &value
}
