package state

import (
	"fmt"
	"math"
)

// pollOptions resolves the option set for a new poll. Unknown types behave
// like multiple_choice, matching how stored documents from older deployments
// are interpreted.
func pollOptions(pollType string, custom *OptionMap) OptionMap {
	options := NewOptionMap()
	switch pollType {
	case POLL_YES_NO:
		options.Set("A", "Yes")
		options.Set("B", "No")
	case POLL_RATING:
		options.Set("A", "⭐")
		options.Set("B", "⭐⭐")
		options.Set("C", "⭐⭐⭐")
		options.Set("D", "⭐⭐⭐⭐")
		options.Set("E", "⭐⭐⭐⭐⭐")
	default:
		if custom != nil && custom.Len() > 0 {
			return custom.Clone()
		}
		options.Set("A", "Option A")
		options.Set("B", "Option B")
		options.Set("C", "Option C")
		options.Set("D", "Option D")
	}
	return *options
}

// recompute refreshes total_votes, winner and winner_percentage. The winner
// is the first option at the maximum count in option insertion order, which
// makes tie-breaking stable across calls.
func (p *PollState) recompute() {
	total := 0
	for _, key := range p.Options.Keys() {
		total += p.Votes[key]
	}
	p.TotalVotes = total
	if total == 0 {
		return
	}
	winner := ""
	winnerVotes := -1
	for _, key := range p.Options.Keys() {
		if p.Votes[key] > winnerVotes {
			winner = key
			winnerVotes = p.Votes[key]
		}
	}
	p.Winner = &winner
	p.WinnerPercentage = math.Round(float64(winnerVotes)/float64(total)*1000) / 10
}

func (p *PollState) result() PollResult {
	clone := p.clone()
	return PollResult{
		Votes:            clone.Votes,
		TotalVotes:       clone.TotalVotes,
		Winner:           clone.Winner,
		WinnerPercentage: clone.WinnerPercentage,
		Options:          clone.Options,
	}
}

func (c *Controller) Poll() PollState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Poll.clone()
}

// CreatePoll starts a new poll. An active buzzer game is force-stopped first,
// the two features are mutually exclusive on the display screen.
func (c *Controller) CreatePoll(question, pollType string, custom *OptionMap) (PollState, error) {
	if question == "" {
		return PollState{}, ErrQuestionRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	gameStopped := false
	if c.doc.GameState.Active {
		c.doc.GameState.Active = false
		gameStopped = true
	}
	options := pollOptions(pollType, custom)
	votes := make(map[string]int, options.Len())
	for _, key := range options.Keys() {
		votes[key] = 0
	}
	startedAt := timestamp()
	c.doc.Poll = PollState{
		Active:       true,
		Question:     question,
		Type:         pollType,
		Options:      options,
		Votes:        votes,
		VotedDevices: []string{},
		StartedAt:    &startedAt,
	}
	entry := c.logEvent("poll_started", fmt.Sprintf("Poll started: %s (Type: %s)", question, pollType), nil)
	c.flush()
	if gameStopped {
		c.emit("game_stopped", c.doc.GameState.clone())
	}
	c.emit("poll_started", c.doc.Poll.clone())
	c.emit("log_update", entry)
	return c.doc.Poll.clone(), nil
}

// Vote records one vote for option on behalf of deviceId. A device gets one
// vote per poll lifetime, matched by exact string comparison.
func (c *Controller) Vote(option, deviceId string) (PollResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.doc.Poll.Active {
		return PollResult{}, ErrNoActivePoll
	}
	if _, valid := c.doc.Poll.Votes[option]; !valid {
		return PollResult{}, ErrInvalidOption
	}
	for _, voted := range c.doc.Poll.VotedDevices {
		if voted == deviceId {
			return PollResult{}, ErrDeviceVoted
		}
	}
	c.doc.Poll.Votes[option] += 1
	c.doc.Poll.VotedDevices = append(c.doc.Poll.VotedDevices, deviceId)
	c.doc.Poll.recompute()
	entry := c.logEvent("poll_vote", fmt.Sprintf("Vote cast for option %s", option), nil)
	c.flush()
	result := c.doc.Poll.result()
	c.emit("poll_vote_update", result)
	c.emit("log_update", entry)
	return result, nil
}

// StopPoll ends the poll and runs the final winner computation. Stopping an
// already-inactive poll still succeeds and still broadcasts the last result.
func (c *Controller) StopPoll() PollResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc.Poll.Active {
		c.doc.Poll.Active = false
		endedAt := timestamp()
		c.doc.Poll.EndedAt = &endedAt
		c.doc.Poll.recompute()
		var entry LogEntry
		if c.doc.Poll.TotalVotes > 0 {
			winner := *c.doc.Poll.Winner
			winnerName, _ := c.doc.Poll.Options.Get(winner)
			entry = c.logEvent("poll_ended", fmt.Sprintf("Poll ended. Winner: %s with %d votes (%.1f%%)",
				winnerName, c.doc.Poll.Votes[winner], c.doc.Poll.WinnerPercentage), nil)
		} else {
			entry = c.logEvent("poll_ended", "Poll ended with no votes", nil)
		}
		c.flush()
		result := c.doc.Poll.result()
		c.emit("poll_stopped", result)
		c.emit("log_update", entry)
		return result
	}
	result := c.doc.Poll.result()
	c.emit("poll_stopped", result)
	return result
}

// ResetPoll restores the canonical default poll, clearing voted devices so
// every device can vote again on the next poll.
func (c *Controller) ResetPoll() PollState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Poll = DefaultPoll()
	entry := c.logEvent("poll_reset", "Poll data reset", nil)
	c.flush()
	c.emit("poll_reset", nil)
	c.emit("log_update", entry)
	return c.doc.Poll.clone()
}
