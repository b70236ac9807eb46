package domain

// TakeDamage наносит урон игроку.
// Возвращает true ровно один раз на каждую смерть: повторные удары по трупу не считаются.
func (p *Player) TakeDamage(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	p.Health -= amount

	if p.Health <= 0 && !p.DeathReported {
		p.DeathReported = true
		return true
	}
	return false
}

// Heal добавляет здоровье не выше максимума.
// Вернувшийся выше нуля игрок снова может умереть, поэтому флаг смерти сбрасывается.
func (p *Player) Heal(amount float64) {
	if amount <= 0 {
		return
	}
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	if p.Health > 0 {
		p.DeathReported = false
	}
}

// Restore - полное здоровье и сброс флага смерти (респавн, старт, конец игры)
func (p *Player) Restore() {
	p.Health = p.MaxHealth
	p.DeathReported = false
}

// SpendExperience списывает опыт. Возвращает false, если не хватило.
func (p *Player) SpendExperience(cost float64) bool {
	if cost < 0 || p.Experience < cost {
		return false
	}
	p.Experience -= cost
	return true
}

// GainExperience начисляет опыт (отрицательные значения игнорируются)
func (p *Player) GainExperience(amount float64) {
	if amount > 0 {
		p.Experience += amount
	}
}

// TakeDamage наносит урон врагу. Возвращает true, если враг погиб.
func (e *Enemy) TakeDamage(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	e.Health -= amount
	return e.Health <= 0
}
