package utils

import "github.com/google/uuid"

// GenerateID возвращает новый UUIDv4 (игроки, партии, сессии, враги, снаряды).
func GenerateID() string {
	return uuid.NewString()
}

// ShortID - первые n символов идентификатора, для имён вида "Player-1a2b".
func ShortID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}
