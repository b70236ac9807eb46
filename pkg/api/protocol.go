package api

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	MsgPlayerInit         = "playerInit"
	MsgPlayerUpdate       = "playerUpdate"
	MsgPlayerUpdated      = "playerUpdated"
	MsgPartyList          = "partyList"
	MsgPartyCreated       = "partyCreated"
	MsgPartyJoined        = "partyJoined"
	MsgPartyUpdate        = "partyUpdate"
	MsgPartyError         = "partyError"
	MsgPartyMemberDetails = "partyMemberDetails"
	MsgGameError          = "gameError"
	MsgGameStarted        = "gameStarted"
	MsgNewWave            = "newWave"
	MsgEnemiesSpawned     = "enemiesSpawned"
	MsgEnemiesUpdate      = "enemiesUpdate"
	MsgEnemyDamaged       = "enemyDamaged"
	MsgEnemyDestroyed     = "enemyDestroyed"
	MsgNewProjectile      = "newProjectile"
	MsgPlayerMove         = "playerMove"
	MsgPlayerDamaged      = "playerDamaged"
	MsgPlayerDied         = "playerDied"
	MsgPlayerRespawned    = "playerRespawned"
	MsgPlayerLeft         = "playerLeft"
	MsgPlayerXP           = "playerXp"
	MsgGameOver           = "gameOver"
)

// ServerMessage - конверт любого сообщения сервера.
// ReqID заполняется только в ответах на RPC-запросы клиента.
type ServerMessage struct {
	Type    string `json:"type"`
	ReqID   uint64 `json:"reqId,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// NewMessage - сокращение для конверта без reqId
func NewMessage(msgType string, payload any) ServerMessage {
	return ServerMessage{Type: msgType, Payload: payload}
}

// Vec - координаты на проводе
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerView - полный снимок игрока (playerInit, gameStarted)
type PlayerView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Position   Vec     `json:"position"`
	Angle      float64 `json:"angle"`
	Health     float64 `json:"health"`
	MaxHealth  float64 `json:"maxHealth"`
	Experience float64 `json:"experience"`
	Level      int     `json:"level"`
	Speed      float64 `json:"speed"`
	Damage     float64 `json:"damage"`
	FireRate   float64 `json:"fireRate"`
	Type       string  `json:"type"`
	WeaponType string  `json:"weaponType"`
	PartyID    string  `json:"partyId,omitempty"`
	GameID     string  `json:"gameId,omitempty"`
}

// PlayerDelta - изменения характеристик после улучшения
type PlayerDelta struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	WeaponType     string  `json:"weaponType"`
	Health         float64 `json:"health"`
	MaxHealth      float64 `json:"maxHealth"`
	Experience     float64 `json:"experience"`
	Level          int     `json:"level"`
	Speed          float64 `json:"speed"`
	Damage         float64 `json:"damage"`
	FireRate       float64 `json:"fireRate"`
	UpgradeApplied string  `json:"upgradeApplied,omitempty"`
}

type EnemyView struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Position  Vec     `json:"position"`
	Radius    float64 `json:"radius"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Damage    float64 `json:"damage"`
	Speed     float64 `json:"speed"`
	ExpValue  float64 `json:"expValue"`
}

type ProjectileView struct {
	ID         string  `json:"id"`
	OwnerID    string  `json:"ownerId"`
	Position   Vec     `json:"position"`
	Angle      float64 `json:"angle"`
	Speed      float64 `json:"speed"`
	Damage     float64 `json:"damage"`
	TimeToLive int     `json:"timeToLive"`
}

// PartyView - partyCreated / partyJoined / partyUpdate
type PartyView struct {
	ID      string   `json:"id"`
	Leader  string   `json:"leader"`
	Members []string `json:"members"`
	Status  string   `json:"status"`
	GameID  string   `json:"game,omitempty"`
}

// PartyListEntry - элемент partyList (только ожидающие партии)
type PartyListEntry struct {
	ID         string `json:"id"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
}

type MemberDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type GameStartedPayload struct {
	ID      string       `json:"id"`
	Wave    int          `json:"wave"`
	Players []PlayerView `json:"players"`
}

type HealthPayload struct {
	ID        string  `json:"id"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
}

type PlayerMovePayload struct {
	ID       string  `json:"id"`
	Position Vec     `json:"position"`
	Angle    float64 `json:"angle"`
}

type PlayerRespawnedPayload struct {
	ID        string  `json:"id"`
	Position  Vec     `json:"position"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
}

type PlayerXPPayload struct {
	ID         string  `json:"id"`
	Experience float64 `json:"experience"`
}

type GameOverPayload struct {
	Result string `json:"result"`
	Wave   int    `json:"wave"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - входящее сообщение после снятия конверта.
// Payload остаётся в кодеке соединения и распаковывается хендлером.
type ClientCommand struct {
	Action  string
	ReqID   uint64
	Payload []byte
}

// --- Payloads ---

type PlayerUpdatePayload struct {
	Position Vec     `json:"position"`
	Angle    float64 `json:"angle"`
}

type ShootPayload struct {
	Angle float64 `json:"angle"`
}

// CreatePartyPayload: name - отображаемое имя создателя (необязательно)
type CreatePartyPayload struct {
	Name string `json:"name,omitempty"`
}

type JoinPartyPayload struct {
	PartyID    string `json:"partyId"`
	PlayerName string `json:"playerName,omitempty"`
}

type UpgradePayload struct {
	Type string `json:"type"`
}

// MemberIDs - payload getPartyMemberDetails: голый массив id
type MemberIDs []string
