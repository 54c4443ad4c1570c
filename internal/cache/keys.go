package cache

import "fmt"

// GenerationStatusKey builds the Redis key for a user's advisory
// "generation in progress" flag.
func GenerationStatusKey(userID string) string {
	return fmt.Sprintf("quizforge:user:%s:generating", userID)
}
