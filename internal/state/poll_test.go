package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePollResolvesOptionsByType(t *testing.T) {
	custom := NewOptionMap()
	custom.Set("A", "Red")
	custom.Set("B", "Blue")
	tests := []struct {
		description    string
		pollType       string
		custom         *OptionMap
		expectedKeys   []string
		expectedLabels map[string]string
	}{
		{"Test yes/no poll", POLL_YES_NO, nil, []string{"A", "B"}, map[string]string{"A": "Yes", "B": "No"}},
		{"Test rating poll", POLL_RATING, nil, []string{"A", "B", "C", "D", "E"}, map[string]string{"A": "⭐", "E": "⭐⭐⭐⭐⭐"}},
		{"Test multiple choice with custom options", POLL_MULTIPLE_CHOICE, custom, []string{"A", "B"}, map[string]string{"A": "Red", "B": "Blue"}},
		{"Test multiple choice defaults", POLL_MULTIPLE_CHOICE, nil, []string{"A", "B", "C", "D"}, map[string]string{"A": "Option A", "D": "Option D"}},
		{"Test unknown type falls back to multiple choice", "ranked", nil, []string{"A", "B", "C", "D"}, map[string]string{"B": "Option B"}},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			control, recorder := newTestController(t)
			poll, err := control.CreatePoll("Ready?", tc.pollType, tc.custom)
			assert.Nil(t, err, "Failed to create poll")
			assert.True(t, poll.Active)
			assert.Equal(t, tc.expectedKeys, poll.Options.Keys())
			for key, label := range tc.expectedLabels {
				actual, exists := poll.Options.Get(key)
				assert.True(t, exists)
				assert.Equal(t, label, actual)
			}
			// votes.keys() == options.keys() with every count at zero.
			assert.Len(t, poll.Votes, poll.Options.Len())
			for _, key := range poll.Options.Keys() {
				count, exists := poll.Votes[key]
				assert.True(t, exists)
				assert.Equal(t, 0, count)
			}
			assert.Equal(t, 0, poll.TotalVotes)
			assert.Nil(t, poll.Winner)
			assert.Empty(t, poll.VotedDevices)
			assert.NotNil(t, poll.StartedAt)
			assert.Nil(t, poll.EndedAt)
			_, started := recorder.last("poll_started")
			assert.True(t, started, "Expected a poll_started broadcast")
		})
	}
}

func TestCreatePollRejectsEmptyQuestion(t *testing.T) {
	control, recorder := newTestController(t)
	_, err := control.CreatePoll("", POLL_YES_NO, nil)
	assert.ErrorIs(t, err, ErrQuestionRequired)
	assert.Empty(t, recorder.names())
	assert.False(t, control.Poll().Active)
}

func TestCreatePollForceStopsActiveGame(t *testing.T) {
	control, recorder := newTestController(t)
	control.StartGame()
	recorder.reset()
	_, err := control.CreatePoll("Ready?", POLL_YES_NO, nil)
	assert.Nil(t, err)
	assert.False(t, control.GameState().Active)
	names := recorder.names()
	assert.Equal(t, []string{"game_stopped", "poll_started", "log_update"}, names)
}

func TestVoteTalliesDistinctDevices(t *testing.T) {
	control, _ := newTestController(t)
	_, err := control.CreatePoll("Ready?", POLL_MULTIPLE_CHOICE, nil)
	assert.Nil(t, err)
	devices := []struct {
		option string
		device string
	}{
		{"A", "1.1.1.1"},
		{"A", "2.2.2.2"},
		{"B", "3.3.3.3"},
	}
	for _, vote := range devices {
		_, err := control.Vote(vote.option, vote.device)
		assert.Nil(t, err, "Vote should have been accepted")
	}
	poll := control.Poll()
	assert.Equal(t, 3, poll.TotalVotes)
	assert.Equal(t, 2, poll.Votes["A"])
	assert.Equal(t, 1, poll.Votes["B"])
	total := 0
	for _, count := range poll.Votes {
		total += count
	}
	assert.Equal(t, poll.TotalVotes, total)
	assert.Equal(t, "A", *poll.Winner)
	assert.Equal(t, 66.7, poll.WinnerPercentage)
	assert.Equal(t, []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"}, poll.VotedDevices)
}

func TestConcurrentVotesAreAllCounted(t *testing.T) {
	control, _ := newTestController(t)
	_, err := control.CreatePoll("Ready?", POLL_MULTIPLE_CHOICE, nil)
	assert.Nil(t, err)
	// Votes race through the serialization point from separate goroutines.
	// Every one must land, a clobbered read-modify-write would lose some.
	const voters = 32
	options := []string{"A", "B", "C", "D"}
	var wg sync.WaitGroup
	for i := 0; i < voters; i += 1 {
		wg.Add(1)
		go func(voter int) {
			defer wg.Done()
			_, err := control.Vote(options[voter%len(options)], fmt.Sprintf("10.0.0.%d", voter))
			assert.Nil(t, err, "Vote should have been accepted")
		}(i)
	}
	wg.Wait()
	poll := control.Poll()
	assert.Equal(t, voters, poll.TotalVotes)
	total := 0
	for _, count := range poll.Votes {
		total += count
	}
	assert.Equal(t, voters, total)
	assert.Len(t, poll.VotedDevices, voters)
}

func TestVoteRejectsDuplicateDevice(t *testing.T) {
	control, recorder := newTestController(t)
	_, err := control.CreatePoll("Ready?", POLL_YES_NO, nil)
	assert.Nil(t, err)
	_, err = control.Vote("A", "1.1.1.1")
	assert.Nil(t, err)
	recorder.reset()
	_, err = control.Vote("B", "1.1.1.1")
	assert.ErrorIs(t, err, ErrDeviceVoted)
	assert.Empty(t, recorder.names(), "A rejected vote must not broadcast")
	poll := control.Poll()
	assert.Equal(t, 1, poll.TotalVotes)
	assert.Equal(t, 1, poll.Votes["A"])
	assert.Equal(t, 0, poll.Votes["B"])
}

func TestVoteFailsWithoutActivePoll(t *testing.T) {
	control, _ := newTestController(t)
	_, err := control.Vote("A", "1.1.1.1")
	assert.ErrorIs(t, err, ErrNoActivePoll)
}

func TestVoteRejectsUnknownOption(t *testing.T) {
	control, _ := newTestController(t)
	_, err := control.CreatePoll("Ready?", POLL_YES_NO, nil)
	assert.Nil(t, err)
	_, err = control.Vote("C", "1.1.1.1")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, 0, control.Poll().TotalVotes)
}

func TestTieBreakPrefersFirstOptionKey(t *testing.T) {
	control, _ := newTestController(t)
	_, err := control.CreatePoll("Ready?", POLL_YES_NO, nil)
	assert.Nil(t, err)
	_, err = control.Vote("A", "1.1.1.1")
	assert.Nil(t, err)
	_, err = control.Vote("B", "2.2.2.2")
	assert.Nil(t, err)
	// Stopping repeatedly must keep yielding the same winner.
	for i := 0; i < 3; i += 1 {
		result := control.StopPoll()
		assert.Equal(t, "A", *result.Winner)
		assert.Equal(t, 50.0, result.WinnerPercentage)
		assert.Equal(t, 2, result.TotalVotes)
	}
}

func TestBestColorScenario(t *testing.T) {
	control, _ := newTestController(t)
	options := NewOptionMap()
	options.Set("A", "Red")
	options.Set("B", "Blue")
	_, err := control.CreatePoll("Best color?", POLL_MULTIPLE_CHOICE, options)
	assert.Nil(t, err)
	_, err = control.Vote("A", "1.1.1.1")
	assert.Nil(t, err)
	_, err = control.Vote("B", "2.2.2.2")
	assert.Nil(t, err)
	result := control.StopPoll()
	assert.Equal(t, "A", *result.Winner)
	assert.Equal(t, 50.0, result.WinnerPercentage)
	assert.Equal(t, 2, result.TotalVotes)
}

func TestStopPollWithoutVotes(t *testing.T) {
	control, recorder := newTestController(t)
	_, err := control.CreatePoll("Ready?", POLL_YES_NO, nil)
	assert.Nil(t, err)
	result := control.StopPoll()
	assert.Nil(t, result.Winner)
	assert.Equal(t, 0.0, result.WinnerPercentage)
	assert.Equal(t, 0, result.TotalVotes)
	_, stopped := recorder.last("poll_stopped")
	assert.True(t, stopped)
	logs := control.RecentLogs(1)
	assert.Equal(t, "Poll ended with no votes", logs[0].Details)
}

func TestStopPollSummarizesWinner(t *testing.T) {
	control, _ := newTestController(t)
	options := NewOptionMap()
	options.Set("A", "Red")
	options.Set("B", "Blue")
	_, err := control.CreatePoll("Best color?", POLL_MULTIPLE_CHOICE, options)
	assert.Nil(t, err)
	_, err = control.Vote("A", "1.1.1.1")
	assert.Nil(t, err)
	_, err = control.Vote("A", "2.2.2.2")
	assert.Nil(t, err)
	_, err = control.Vote("B", "3.3.3.3")
	assert.Nil(t, err)
	control.StopPoll()
	logs := control.RecentLogs(1)
	assert.Equal(t, "poll_ended", logs[0].Type)
	assert.Equal(t, "Poll ended. Winner: Red with 2 votes (66.7%)", logs[0].Details)
}

func TestStopInactivePollStillBroadcasts(t *testing.T) {
	control, recorder := newTestController(t)
	result := control.StopPoll()
	assert.Equal(t, 0, result.TotalVotes)
	names := recorder.names()
	assert.Equal(t, []string{"poll_stopped"}, names, "Inactive stop broadcasts without logging")
}

func TestResetPollRestoresCanonicalDefaults(t *testing.T) {
	control, recorder := newTestController(t)
	_, err := control.CreatePoll("Ready?", POLL_RATING, nil)
	assert.Nil(t, err)
	_, err = control.Vote("E", "1.1.1.1")
	assert.Nil(t, err)
	recorder.reset()
	poll := control.ResetPoll()
	assert.False(t, poll.Active)
	assert.Empty(t, poll.Question)
	assert.Equal(t, POLL_MULTIPLE_CHOICE, poll.Type)
	assert.Equal(t, []string{"A", "B", "C", "D"}, poll.Options.Keys())
	assert.Equal(t, map[string]int{"A": 0, "B": 0, "C": 0, "D": 0}, poll.Votes)
	assert.Empty(t, poll.VotedDevices)
	assert.Nil(t, poll.Winner)
	assert.Equal(t, 0, poll.TotalVotes)
	assert.Nil(t, poll.StartedAt)
	assert.Nil(t, poll.EndedAt)
	names := recorder.names()
	assert.Equal(t, []string{"poll_reset", "log_update"}, names)

	// A device that voted before the reset is allowed to vote again.
	_, err = control.CreatePoll("Again?", POLL_YES_NO, nil)
	assert.Nil(t, err)
	_, err = control.Vote("A", "1.1.1.1")
	assert.Nil(t, err)
}
