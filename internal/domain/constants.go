package domain

// Геометрия арены
const (
	ArenaWidth  = 1600.0
	ArenaHeight = 900.0
	ArenaMargin = 100.0 // снаряды за этой рамкой удаляются
	SpawnOffset = 50.0  // враги появляются за краем арены
)

// Радиусы столкновений
const (
	PlayerRadius     = 20.0
	ProjectileRadius = 5.0
	HitForgiveness   = 2.0
)

// Снаряды
const (
	ProjectileSpeed = 10.0
	ProjectileTTL   = 100 // в тиках
)

// Стартовые характеристики игрока
const (
	DefaultHealth   = 100.0
	DefaultSpeed    = 5.0
	DefaultDamage   = 10.0
	DefaultFireRate = 5.0
)

// Лобби
const (
	MaxPartySize = 4
)
