package domain

import "math"

// Position - точка на арене (пиксели, float)
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo возвращает евклидово расстояние
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// AngleTo - угол (atan2) направления на другую точку
func (p Position) AngleTo(other Position) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Shift возвращает новую позицию со смещением
func (p Position) Shift(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Advance - шаг длины dist под углом angle
func (p Position) Advance(angle, dist float64) Position {
	return p.Shift(math.Cos(angle)*dist, math.Sin(angle)*dist)
}

// IsFinite отсекает NaN/Inf из клиентского ввода
func (p Position) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Arena - прямоугольник игрового поля
type Arena struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

func DefaultArena() Arena {
	return Arena{Width: ArenaWidth, Height: ArenaHeight, Margin: ArenaMargin}
}

func (a Arena) Center() Position {
	return Position{X: a.Width / 2, Y: a.Height / 2}
}

// OutOfBounds - точка вышла за арену с учётом запаса Margin
func (a Arena) OutOfBounds(p Position) bool {
	return p.X < -a.Margin || p.X > a.Width+a.Margin ||
		p.Y < -a.Margin || p.Y > a.Height+a.Margin
}

// SpawnArea - центральная зона для (ре)спавна игроков: [W/4, 3W/4) x [H/3, 7H/9)
func (a Arena) SpawnArea() (x, y, w, h float64) {
	return a.Width / 4, a.Height / 3, a.Width / 2, a.Height * 4 / 9
}
