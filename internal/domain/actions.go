package domain

// ActionType - внутренний числовой идентификатор клиентского сообщения
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionPlayerUpdate
	ActionPlayerShoot
	ActionCreateParty
	ActionJoinParty
	ActionLeaveParty
	ActionStartGame
	ActionUpgradePlayer
	ActionRequestPartyList
	ActionPartyMemberDetails
)

// Имена сообщений на проводе (client -> server)
var actionStringToCmd = map[string]ActionType{
	"playerUpdate":          ActionPlayerUpdate,
	"playerShoot":           ActionPlayerShoot,
	"createParty":           ActionCreateParty,
	"joinParty":             ActionJoinParty,
	"leaveParty":            ActionLeaveParty,
	"startGame":             ActionStartGame,
	"upgradePlayer":         ActionUpgradePlayer,
	"requestPartyList":      ActionRequestPartyList,
	"getPartyMemberDetails": ActionPartyMemberDetails,
}

var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for k, v := range actionStringToCmd {
		m[v] = k
	}
	return m
}()

// ParseAction конвертирует имя сообщения в ActionType.
// Имена регистрозависимые (camelCase), как их шлёт клиент.
func ParseAction(s string) ActionType {
	if val, ok := actionStringToCmd[s]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для логов)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "unknown"
}
