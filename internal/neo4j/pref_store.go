package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/fitz/taskflow/internal/prefs"
)

// PrefStore is a prefs.Store kept in Neo4j as :Preference nodes.
type PrefStore struct {
	client *Client
}

var _ prefs.Store = (*PrefStore)(nil)

// NewPrefStore creates a new preference store
func NewPrefStore(client *Client) *PrefStore {
	return &PrefStore{client: client}
}

// Get implements prefs.Store.
func (s *PrefStore) Get(ctx context.Context, key string) (string, error) {
	session := s.client.Session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (p:Preference {key: $key}) RETURN p.value AS value`, map[string]any{"key": key})
	if err != nil {
		return "", fmt.Errorf("failed to get preference %s: %w", key, err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return "", fmt.Errorf("result iteration error: %w", err)
		}
		return "", prefs.ErrNotFound
	}

	value, _ := result.Record().Get("value")
	str, _ := value.(string)
	return str, nil
}

// Set implements prefs.Store.
func (s *PrefStore) Set(ctx context.Context, key, value string) error {
	session := s.client.Session(ctx)
	defer session.Close(ctx)

	cypher := `
MERGE (p:Preference {key: $key})
SET p.value = $value, p.updated_at = datetime($updated_at)
`
	_, err := session.Run(ctx, cypher, map[string]any{
		"key":        key,
		"value":      value,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}
