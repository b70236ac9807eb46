package engine

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"arena-server/internal/domain"
	"arena-server/internal/systems"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Instance - одна запущенная сессия: её враги, снаряды и счётчик волн.
// Мутируется только из игрового цикла GameService. Собственная горутина
// есть только у тикера, и она лишь кладёт tickEvent в inbox.
type Instance struct {
	Session *domain.Session
	Seed    int64

	svc *GameService
	rng *rand.Rand // локальный генератор: ИИ, волны, респавн

	TickCount    uint64
	droppedTicks atomic.Uint64

	stopCh        chan struct{}
	stopOnce      sync.Once
	gameOverTimer *time.Timer

	// roster - все, кто начинал матч (для истории, включая ушедших)
	roster []domain.MatchPlayer

	log *logrus.Entry
}

func NewInstance(session *domain.Session, svc *GameService, seed int64) *Instance {
	return &Instance{
		Session: session,
		Seed:    seed,
		svc:     svc,
		rng:     rand.New(rand.NewSource(seed)),
		stopCh:  make(chan struct{}),
		log: logger.Log.WithFields(logrus.Fields{
			"component":  "session_loop",
			"session_id": session.ID,
		}),
	}
}

// start запускает тикер. interval == 0 - тики подаются вручную.
func (i *Instance) start(interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-i.stopCh:
				return
			case <-ticker.C:
				if !i.svc.tryPost(tickEvent{sessionID: i.Session.ID}) {
					if n := i.droppedTicks.Add(1); n%100 == 1 {
						i.log.WithField("dropped", n).Warn("Game loop is behind, tick dropped")
					}
				}
			}
		}
	}()
}

// stop останавливает тикер и таймер поражения. Идемпотентен.
func (i *Instance) stop() {
	i.stopOnce.Do(func() {
		close(i.stopCh)
		if i.gameOverTimer != nil {
			i.gameOverTimer.Stop()
		}
	})
}

// --- TICK ---

// tick - ровно один шаг симуляции: снаряды, враги, поражение, волна.
func (i *Instance) tick() {
	i.TickCount++

	i.updateProjectiles()
	i.updateEnemies()
	i.checkDefeat()

	if i.Session.Active() && len(i.Session.Enemies) == 0 {
		i.nextWave()
	}
}

func (i *Instance) updateProjectiles() {
	s := i.Session
	arena := i.svc.cfg.Arena

	n := 0
	for _, p := range s.Projectiles {
		keep := false
		i.guard("projectile", p.Key(), func() {
			keep = i.stepProjectile(p, arena)
		})
		if keep {
			s.Projectiles[n] = p
			n++
		}
	}
	for k := n; k < len(s.Projectiles); k++ {
		s.Projectiles[k] = nil
	}
	s.Projectiles = s.Projectiles[:n]
}

// stepProjectile двигает снаряд и проверяет попадание. false - снаряд удаляется.
func (i *Instance) stepProjectile(p *domain.Projectile, arena domain.Arena) bool {
	systems.AdvanceProjectile(p)

	if hit := systems.ResolveProjectile(p, i.Session.Enemies); hit != nil {
		if hit.Killed {
			i.destroyEnemy(hit.Enemy, p.OwnerID)
		} else {
			i.broadcast(api.MsgEnemyDamaged, healthPayload(hit.Enemy.ID, hit.Enemy.Health, hit.Enemy.MaxHealth))
		}
		return false
	}

	return !systems.ProjectileExpired(p, arena)
}

func (i *Instance) destroyEnemy(e *domain.Enemy, ownerID string) {
	s := i.Session
	s.RemoveEnemy(e.ID)
	s.Kills++

	// опыт получает владелец снаряда, если он ещё подключён
	if owner, ok := i.svc.players[ownerID]; ok {
		owner.GainExperience(e.ExpValue)
		i.broadcast(api.MsgPlayerXP, api.PlayerXPPayload{ID: owner.ID, Experience: owner.Experience})
	}
	i.broadcast(api.MsgEnemyDestroyed, e.ID)
}

func (i *Instance) updateEnemies() {
	s := i.Session
	players := i.players()
	arena := i.svc.cfg.Arena

	n := 0
	for _, e := range s.Enemies {
		ok := i.guard("enemy", e.Key(), func() {
			target, dist := systems.SelectTarget(e, players, i.rng)

			// касание проверяется по расстоянию до шага
			if target != nil && systems.EnemyContacts(dist, e) {
				died := systems.ApplyContactDamage(e, target)
				i.broadcast(api.MsgPlayerDamaged, healthPayload(target.ID, target.Health, target.MaxHealth))
				if died {
					i.broadcast(api.MsgPlayerDied, target.ID)
				}
			}

			systems.StepEnemy(e, target, arena, i.rng)
		})
		if ok {
			s.Enemies[n] = e
			n++
		}
	}
	for k := n; k < len(s.Enemies); k++ {
		s.Enemies[k] = nil
	}
	s.Enemies = s.Enemies[:n]

	i.broadcast(api.MsgEnemiesUpdate, enemyViews(s.Enemies))
}

// checkDefeat взводит таймер поражения, когда мертвы все игроки.
// Таймер взводится один раз и не снимается, даже если кто-то воскреснет.
func (i *Instance) checkDefeat() {
	s := i.Session
	if s.GameOverArmed || !s.Active() {
		return
	}

	players := i.players()
	if len(players) == 0 {
		return
	}
	for _, p := range players {
		if p.Alive() {
			return
		}
	}

	s.GameOverArmed = true
	id := s.ID
	i.gameOverTimer = time.AfterFunc(i.svc.cfg.GameOverDelay, func() {
		i.svc.post(timerEvent{sessionID: id, kind: timerGameOver})
	})

	i.log.WithFields(logrus.Fields{
		"wave":  s.Wave,
		"delay": i.svc.cfg.GameOverDelay,
	}).Info("All players down, game over armed")
}

// nextWave: волна+1, мгновенный респавн мёртвых, новые враги.
func (i *Instance) nextWave() {
	s := i.Session
	s.Wave++

	for _, p := range i.players() {
		if systems.RespawnPlayer(p, i.svc.cfg.Arena, i.rng) {
			i.broadcast(api.MsgPlayerRespawned, api.PlayerRespawnedPayload{
				ID:        p.ID,
				Position:  vec(p.Position),
				Health:    p.Health,
				MaxHealth: p.MaxHealth,
			})
		}
	}

	i.broadcast(api.MsgNewWave, s.Wave)
	i.spawnWave(s.Wave)

	i.log.WithFields(logrus.Fields{
		"wave":  s.Wave,
		"kills": s.Kills,
	}).Info("Wave cleared")
}

func (i *Instance) spawnWave(wave int) {
	enemies := systems.ComposeWave(wave, i.svc.cfg.Arena, i.rng, i.svc.newID)
	i.Session.Enemies = append(i.Session.Enemies, enemies...)
	i.broadcast(api.MsgEnemiesSpawned, enemyViews(enemies))
}

// --- helpers ---

// players - живые ссылки на игроков сессии (отключившиеся пропускаются)
func (i *Instance) players() []*domain.Player {
	out := make([]*domain.Player, 0, len(i.Session.Players))
	for _, id := range i.Session.Players {
		if p, ok := i.svc.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (i *Instance) broadcast(msgType string, payload any) {
	i.svc.hub.SendToMany(i.Session.Players, api.NewMessage(msgType, payload), "")
}
