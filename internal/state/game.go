package state

import "fmt"

func (c *Controller) GameState() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.GameState.clone()
}

// StartGame arms the buzzer for a new question. An active poll is
// force-stopped first, the two features are mutually exclusive.
func (c *Controller) StartGame() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	pollStopped := false
	if c.doc.Poll.Active {
		c.doc.Poll.Active = false
		pollStopped = true
	}
	startedAt := timestamp()
	c.doc.GameState.Active = true
	c.doc.GameState.CurrentTeam = nil
	c.doc.GameState.Timestamp = &startedAt
	entry := c.logEvent("game_started", fmt.Sprintf("Round %d started", c.doc.GameState.RoundNumber), nil)
	c.flush()
	if pollStopped {
		c.emit("poll_stopped", nil)
	}
	c.emit("game_started", c.doc.GameState.clone())
	c.emit("log_update", entry)
	return c.doc.GameState.clone()
}

// StopGame disarms the buzzer. The locked-in team, if any, stays on the
// display until the next reset.
func (c *Controller) StopGame() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.GameState.Active = false
	entry := c.logEvent("game_stopped", "Game stopped by admin", nil)
	c.flush()
	c.emit("game_stopped", c.doc.GameState.clone())
	c.emit("log_update", entry)
	return c.doc.GameState.clone()
}

// ResetGame clears the lock-in and advances to the next round.
func (c *Controller) ResetGame() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.GameState.Active = false
	c.doc.GameState.CurrentTeam = nil
	c.doc.GameState.RoundNumber += 1
	entry := c.logEvent("game_reset", fmt.Sprintf("Game reset, new round: %d", c.doc.GameState.RoundNumber), nil)
	c.flush()
	c.emit("game_reset", c.doc.GameState.clone())
	c.emit("log_update", entry)
	return c.doc.GameState.clone()
}

// BuzzIn locks the game to the first team through the serialization point.
// Returns the team's display name.
func (c *Controller) BuzzIn(teamId string) (string, error) {
	if teamId == "" {
		return "", ErrTeamRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.doc.GameState.Active {
		return "", ErrGameNotActive
	}
	if c.doc.GameState.CurrentTeam != nil {
		return "", ErrAlreadyBuzzed
	}
	buzzedAt := timestamp()
	c.doc.GameState.CurrentTeam = &teamId
	c.doc.GameState.Timestamp = &buzzedAt
	teamName, known := c.doc.Teams.Get(teamId)
	if !known {
		teamName = teamId
	}
	entry := c.logEvent("team_buzzed", fmt.Sprintf("%s buzzed in", teamName), &teamId)
	c.flush()
	c.emit("team_buzzed", BuzzEvent{
		Team:      teamId,
		TeamName:  teamName,
		Timestamp: buzzedAt,
	})
	c.emit("log_update", entry)
	return teamName, nil
}
