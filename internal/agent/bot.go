package agent

import (
	"math"
	"time"

	"arena-server/internal/domain"
	"arena-server/internal/systems"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot - "Игрок-компьютер" (Headless Agent).
// Это ВНЕШНИЙ клиент: он видит только сообщения сервера и отвечает командами,
// как обычный игрок через WebSocket. Транспорт не знает: cmd/arenabot
// читает кадры из сокета, отдаёт их в Handle и отправляет результат обратно.
//
// Жизненный цикл:
//  1. playerInit -> лидер создаёт партию, остальные ищут её в partyList.
//  2. partyUpdate -> лидер запускает игру, когда собралось MinPlayers.
//  3. enemiesUpdate -> целимся в ближайшего врага, стреляем не чаще fireRate,
//     отходим от слишком близких врагов.
//  4. playerXp -> покупаем улучшения по плану.
type Bot struct {
	Name       string
	Lead       bool
	MinPlayers int
	// Upgrades - план покупок по порядку. Голова снимается только после подтверждения сервера.
	Upgrades []domain.UpgradeType
	// pending - отправленная, но ещё не подтверждённая покупка
	pending domain.UpgradeType

	ID       string
	PartyID  string
	InGame   bool
	Alive    bool
	Position domain.Position
	Speed    float64
	FireRate float64
	XP       float64
	Type     string
	Enemies  []api.EnemyView

	lastShot time.Time
	now      func() time.Time
	log      *logrus.Entry
}

// Command - то, что бот хочет отправить серверу
type Command struct {
	Action  string
	Payload any
}

// kiteDistance - ближе этого бот отступает от врага
const kiteDistance = 120.0

func NewBot(name string, lead bool, minPlayers int) *Bot {
	return &Bot{
		Name:       name,
		Lead:       lead,
		MinPlayers: minPlayers,
		Upgrades: []domain.UpgradeType{
			domain.UpgradeFireRate, domain.UpgradeDamage, domain.UpgradeDualGuns,
			domain.UpgradeEvolve, domain.UpgradeShotgun,
		},
		FireRate: domain.DefaultFireRate,
		Speed:    domain.DefaultSpeed,
		now:      time.Now,
		log:      logger.WithComponent("bot").WithField("bot", name),
	}
}

// Handle обрабатывает одно сообщение сервера и возвращает команды-ответы.
func (b *Bot) Handle(msgType string, payload []byte, codec api.Codec) []Command {
	switch msgType {
	case api.MsgPlayerInit:
		me, err := api.DecodePayload[api.PlayerView](codec, payload)
		if err != nil {
			return b.decodeFailed(msgType, err)
		}
		b.ID = me.ID
		b.Speed, b.FireRate, b.Type = me.Speed, me.FireRate, me.Type
		if b.Lead {
			return []Command{{Action: "createParty", Payload: api.CreatePartyPayload{Name: b.Name}}}
		}

	case api.MsgPartyList:
		if b.Lead || b.PartyID != "" || b.InGame {
			return nil
		}
		list, err := api.DecodePayload[[]api.PartyListEntry](codec, payload)
		if err != nil {
			return b.decodeFailed(msgType, err)
		}
		for _, p := range list {
			if p.Players < p.MaxPlayers {
				return []Command{{Action: "joinParty", Payload: api.JoinPartyPayload{PartyID: p.ID, PlayerName: b.Name}}}
			}
		}

	case api.MsgPartyCreated, api.MsgPartyJoined, api.MsgPartyUpdate:
		party, err := api.DecodePayload[api.PartyView](codec, payload)
		if err != nil {
			return b.decodeFailed(msgType, err)
		}
		b.PartyID = party.ID
		if b.Lead && party.Leader == b.ID && party.Status == string(domain.PartyWaiting) &&
			len(party.Members) >= b.MinPlayers {
			b.log.WithField("members", len(party.Members)).Info("Party ready, starting game")
			return []Command{{Action: "startGame"}}
		}

	case api.MsgPartyError:
		// партия пропала или заполнилась: ждём следующий partyList
		b.PartyID = ""

	case api.MsgGameStarted:
		started, err := api.DecodePayload[api.GameStartedPayload](codec, payload)
		if err != nil {
			return b.decodeFailed(msgType, err)
		}
		b.InGame, b.Alive, b.XP, b.pending = true, true, 0, ""
		for _, p := range started.Players {
			if p.ID == b.ID {
				b.Position = domain.Position{X: p.Position.X, Y: p.Position.Y}
			}
		}

	case api.MsgEnemiesSpawned, api.MsgEnemiesUpdate:
		enemies, err := api.DecodePayload[[]api.EnemyView](codec, payload)
		if err != nil {
			return b.decodeFailed(msgType, err)
		}
		if msgType == api.MsgEnemiesSpawned {
			b.Enemies = append(b.Enemies, enemies...)
		} else {
			b.Enemies = enemies
		}
		return b.act()

	case api.MsgPlayerDied:
		if id, _ := api.DecodePayload[string](codec, payload); id == b.ID {
			b.Alive = false
		}

	case api.MsgPlayerRespawned:
		p, err := api.DecodePayload[api.PlayerRespawnedPayload](codec, payload)
		if err == nil && p.ID == b.ID {
			b.Alive = true
			b.Position = domain.Position{X: p.Position.X, Y: p.Position.Y}
		}

	case api.MsgPlayerXP:
		p, err := api.DecodePayload[api.PlayerXPPayload](codec, payload)
		if err == nil && p.ID == b.ID {
			b.XP = p.Experience
			return b.shop()
		}

	case api.MsgPlayerUpdate:
		delta, err := api.DecodePayload[api.PlayerDelta](codec, payload)
		if err != nil {
			return b.decodeFailed(msgType, err)
		}
		b.XP, b.Speed, b.FireRate, b.Type = delta.Experience, delta.Speed, delta.FireRate, delta.Type
		if b.pending != "" && delta.UpgradeApplied == string(b.pending) {
			b.Upgrades = b.Upgrades[1:]
			b.pending = ""
			return b.shop()
		}

	case api.MsgGameOver:
		over, _ := api.DecodePayload[api.GameOverPayload](codec, payload)
		b.log.WithFields(logrus.Fields{"result": over.Result, "wave": over.Wave}).Info("Game over")
		b.InGame, b.Enemies, b.pending = false, nil, ""
	}
	return nil
}

// act - мозг бота: отойти от близкого врага и выстрелить в ближайшего.
func (b *Bot) act() []Command {
	if !b.InGame || !b.Alive || len(b.Enemies) == 0 {
		return nil
	}

	target, dist := b.nearestEnemy()
	angle := b.Position.AngleTo(target)

	var out []Command
	if dist < kiteDistance {
		b.Position = b.Position.Advance(angle+math.Pi, b.Speed)
		out = append(out, Command{Action: "playerUpdate", Payload: api.PlayerUpdatePayload{
			Position: api.Vec{X: b.Position.X, Y: b.Position.Y},
			Angle:    angle,
		}})
	}

	now := b.now()
	if b.FireRate > 0 && now.Sub(b.lastShot) >= time.Duration(float64(time.Second)/b.FireRate) {
		b.lastShot = now
		out = append(out, Command{Action: "playerShoot", Payload: api.ShootPayload{Angle: angle}})
	}
	return out
}

func (b *Bot) nearestEnemy() (domain.Position, float64) {
	best := math.Inf(1)
	var target domain.Position
	for _, e := range b.Enemies {
		pos := domain.Position{X: e.Position.X, Y: e.Position.Y}
		if d := b.Position.DistanceTo(pos); d < best {
			best, target = d, pos
		}
	}
	return target, best
}

// shop покупает следующее улучшение плана, если хватает опыта.
// Пока покупка не подтверждена, новая не отправляется.
func (b *Bot) shop() []Command {
	if b.pending != "" {
		cost, _ := systems.UpgradeCost(b.pending)
		if b.XP >= cost {
			return nil
		}
		// опыта меньше цены, а подтверждения нет: сервер отказал, попробуем позже
		b.pending = ""
	}

	// evolve доступен только базовому типу
	for len(b.Upgrades) > 0 && b.Upgrades[0] == domain.UpgradeEvolve && b.Type != "" &&
		b.Type != string(domain.PlayerBasic) {
		b.Upgrades = b.Upgrades[1:]
	}
	if len(b.Upgrades) == 0 {
		return nil
	}

	next := b.Upgrades[0]
	cost, ok := systems.UpgradeCost(next)
	if !ok {
		b.Upgrades = b.Upgrades[1:]
		return nil
	}
	if b.XP < cost {
		return nil
	}
	b.pending = next
	return []Command{{Action: "upgradePlayer", Payload: api.UpgradePayload{Type: string(next)}}}
}

func (b *Bot) decodeFailed(msgType string, err error) []Command {
	b.log.WithError(err).WithField("type", msgType).Warn("Failed to decode server message")
	return nil
}
