package domain

// Party - группа до MaxPartySize игроков, ждущих или играющих
type Party struct {
	ID       string      `json:"id"`
	LeaderID string      `json:"leader"`
	Members  []string    `json:"members"`
	Status   PartyStatus `json:"status"`
	GameID   string      `json:"game,omitempty"`
}

func (p *Party) Has(playerID string) bool {
	for _, id := range p.Members {
		if id == playerID {
			return true
		}
	}
	return false
}

func (p *Party) Full(limit int) bool {
	return len(p.Members) >= limit
}

// Remove убирает участника, сохраняя порядок. Лидерство переходит первому оставшемуся.
func (p *Party) Remove(playerID string) {
	n := 0
	for _, id := range p.Members {
		if id != playerID {
			p.Members[n] = id
			n++
		}
	}
	p.Members = p.Members[:n]

	if p.LeaderID == playerID {
		p.LeaderID = ""
		if len(p.Members) > 0 {
			p.LeaderID = p.Members[0]
		}
	}
}

func (p *Party) Empty() bool { return len(p.Members) == 0 }
