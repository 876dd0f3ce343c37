package memory

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	"github.com/tmc/langchaingo/llms"
)

// Store persists conversational turns in sqlite. Each conversation is an
// append/read log keyed by conversation id.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT,
		role TEXT,
		content TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Conversation returns the memory view for one conversation id.
func (s *Store) Conversation(id string) *Conversation {
	return &Conversation{store: s, id: id}
}

// Conversation is the per-conversation append/read log backed by a Store.
type Conversation struct {
	store *Store
	id    string
}

func (c *Conversation) Get(ctx context.Context) ([]llms.MessageContent, error) {
	rows, err := c.store.db.QueryContext(ctx,
		`SELECT role, content FROM messages WHERE conversation_id = ? ORDER BY id ASC`, c.id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []llms.MessageContent
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, err
		}
		history = append(history, llms.MessageContent{
			Role:  normalizeRole(role),
			Parts: []llms.ContentPart{llms.TextPart(content)},
		})
	}
	return history, rows.Err()
}

func (c *Conversation) Put(ctx context.Context, msg llms.MessageContent) error {
	_, err := c.store.db.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, role, content) VALUES (?, ?, ?)`,
		c.id, string(msg.Role), textOf(msg))
	return err
}

func normalizeRole(role string) llms.ChatMessageType {
	switch llms.ChatMessageType(role) {
	case llms.ChatMessageTypeAI, llms.ChatMessageTypeSystem, llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeTool, llms.ChatMessageTypeGeneric:
		return llms.ChatMessageType(role)
	default:
		return llms.ChatMessageTypeHuman
	}
}

// textOf flattens the text parts of a message; non-text parts are not
// persisted.
func textOf(msg llms.MessageContent) string {
	var parts []string
	for _, p := range msg.Parts {
		if tc, ok := p.(llms.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
