package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
)

type SQLiteMessageStore struct {
	db *sql.DB
}

func NewSQLiteMessageStore(db *sql.DB) *SQLiteMessageStore {
	return &SQLiteMessageStore{db: db}
}

func (s *SQLiteMessageStore) CreateMessage(ctx context.Context, message Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, sender, recipient, group_id, content, created_at)
		 VALUES (@id, @sender, @recipient, @group_id, @content, @created_at)`,
		sql.Named("id", message.ID),
		sql.Named("sender", message.Sender),
		sql.Named("recipient", message.Recipient),
		sql.Named("group_id", message.GroupID),
		sql.Named("content", message.Content),
		sql.Named("created_at", message.CreatedAt))
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}
	return nil
}

func (s *SQLiteMessageStore) MessagesBetween(ctx context.Context, a, b string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender, recipient, group_id, content, created_at FROM messages
		 WHERE (sender = @a AND recipient = @b) OR (sender = @b AND recipient = @a)
		 ORDER BY created_at`,
		sql.Named("a", a), sql.Named("b", b))
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (s *SQLiteMessageStore) MessagesByGroup(ctx context.Context, groupID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender, recipient, group_id, content, created_at FROM messages
		 WHERE group_id = ? ORDER BY created_at`, groupID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Recipient, &m.GroupID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

type SQLiteGroupStore struct {
	db *sql.DB
}

func NewSQLiteGroupStore(db *sql.DB) *SQLiteGroupStore {
	return &SQLiteGroupStore{db: db}
}

func (s *SQLiteGroupStore) CreateGroup(ctx context.Context, group Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (@id, @name, @created_by, @created_at)",
		sql.Named("id", group.ID),
		sql.Named("name", group.Name),
		sql.Named("created_by", group.CreatedBy),
		sql.Named("created_at", group.CreatedAt))
	if err != nil {
		return fmt.Errorf("creating group: %w", err)
	}

	members := group.Members
	if !slices.Contains(members, group.CreatedBy) {
		members = append(members, group.CreatedBy)
	}
	for _, member := range members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, username) VALUES (@group_id, @username)",
			sql.Named("group_id", group.ID), sql.Named("username", member))
		if err != nil {
			return fmt.Errorf("adding group member: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteGroupStore) GroupsByMember(ctx context.Context, username string) ([]Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.created_by, g.created_at FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.username = ? ORDER BY g.created_at`, username)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		members, err := s.members(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Members = members
	}

	return groups, nil
}

func (s *SQLiteGroupStore) IsMember(ctx context.Context, groupID, username string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM group_members WHERE group_id = @group_id AND username = @username LIMIT 1",
		sql.Named("group_id", groupID), sql.Named("username", username))

	var one int
	err := row.Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("scanning membership: %w", err)
	}
	return true, nil
}

func (s *SQLiteGroupStore) members(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username FROM group_members WHERE group_id = ? ORDER BY username", groupID)
	if err != nil {
		return nil, fmt.Errorf("querying group members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("scanning group member: %w", err)
		}
		members = append(members, username)
	}
	return members, rows.Err()
}
