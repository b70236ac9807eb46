package domain

import "time"

// MatchRecord - итог сессии для истории матчей
type MatchRecord struct {
	SessionID string        `json:"sessionId" bson:"session_id"`
	PartyID   string        `json:"partyId" bson:"party_id"`
	Result    MatchResult   `json:"result" bson:"result"`
	Wave      int           `json:"wave" bson:"wave"`
	Kills     int           `json:"kills" bson:"kills"`
	StartedAt time.Time     `json:"startedAt" bson:"started_at"`
	EndedAt   time.Time     `json:"endedAt" bson:"ended_at"`
	Players   []MatchPlayer `json:"players" bson:"players"`
}

type MatchPlayer struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name" bson:"name"`
	Experience float64 `json:"experience" bson:"experience"`
}

// PlayerIDs - плоский список для pq.Array
func (m MatchRecord) PlayerIDs() []string {
	ids := make([]string, len(m.Players))
	for i, p := range m.Players {
		ids[i] = p.ID
	}
	return ids
}
