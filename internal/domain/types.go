package domain

// PlayerType - класс игрока (evolve переводит basic -> advanced)
type PlayerType string

const (
	PlayerBasic    PlayerType = "basic"
	PlayerAdvanced PlayerType = "advanced"
)

// WeaponType определяет паттерн выстрела
type WeaponType string

const (
	WeaponNormal  WeaponType = "normal"
	WeaponDual    WeaponType = "dual"
	WeaponShotgun WeaponType = "shotgun"
)

// EnemyType - тип врага, от него зависят множители и радиус
type EnemyType string

const (
	EnemyBasic    EnemyType = "basic"
	EnemyAdvanced EnemyType = "advanced"
	EnemyFast     EnemyType = "fast"
	EnemyTank     EnemyType = "tank"
	EnemyBoss     EnemyType = "boss"
)

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionEnded  SessionStatus = "ended"
)

type PartyStatus string

const (
	PartyWaiting PartyStatus = "waiting"
	PartyPlaying PartyStatus = "playing"
)

// MatchResult - чем закончилась сессия
type MatchResult string

const (
	ResultDefeat    MatchResult = "defeat"
	ResultAbandoned MatchResult = "abandoned"
)

// UpgradeType - ключ в таблице улучшений
type UpgradeType string

const (
	UpgradeSpeed    UpgradeType = "speed"
	UpgradeDamage   UpgradeType = "damage"
	UpgradeFireRate UpgradeType = "fireRate"
	UpgradeHealth   UpgradeType = "health"
	UpgradeEvolve   UpgradeType = "evolve"
	UpgradeDualGuns UpgradeType = "dualGuns"
	UpgradeShotgun  UpgradeType = "shotgun"
)
