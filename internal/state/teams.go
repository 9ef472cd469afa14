package state

func (c *Controller) Teams() OptionMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Teams.Clone()
}

// UpdateTeams replaces all team names wholesale. The show always runs with
// exactly REQUIRED_TEAM_COUNT teams.
func (c *Controller) UpdateTeams(teams OptionMap) error {
	if teams.Len() != REQUIRED_TEAM_COUNT {
		return ErrTeamCount
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Teams = teams.Clone()
	entry := c.logEvent("teams_updated", "Team names updated", nil)
	c.flush()
	c.emit("teams_updated", c.doc.Teams.Clone())
	c.emit("log_update", entry)
	return nil
}
