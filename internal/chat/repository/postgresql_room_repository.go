// Package repository provides room and message persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/securemessenger/internal/chat/domain"
	"github.com/allisson/securemessenger/internal/database"
	apperrors "github.com/allisson/securemessenger/internal/errors"
)

const postgresUniqueViolation = "23505"

// PostgreSQLRoomRepository handles rooms and memberships for PostgreSQL.
type PostgreSQLRoomRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoomRepository creates a new PostgreSQLRoomRepository.
func NewPostgreSQLRoomRepository(db *sql.DB) *PostgreSQLRoomRepository {
	return &PostgreSQLRoomRepository{db: db}
}

// Create inserts a room. A duplicate name returns ErrRoomNameTaken.
func (p *PostgreSQLRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO rooms (id, name, description, created_by, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query, room.ID, room.Name, room.Description, room.CreatedBy, room.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolation {
			return domain.ErrRoomNameTaken
		}
		return apperrors.Wrap(err, "failed to create room")
	}
	return nil
}

// CreateIfAbsent inserts a room unless one with the same name exists. It never fails on
// a name conflict, so it is safe inside a transaction racing other registrations.
func (p *PostgreSQLRoomRepository) CreateIfAbsent(ctx context.Context, room *domain.Room) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO rooms (id, name, description, created_by, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (name) DO NOTHING`

	result, err := querier.ExecContext(ctx, query, room.ID, room.Name, room.Description, room.CreatedBy, room.CreatedAt)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to create room")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get affected rows")
	}
	return rows == 1, nil
}

// GetByID retrieves a room by ID.
func (p *PostgreSQLRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	return p.getOne(ctx, `SELECT id, name, description, created_by, created_at FROM rooms WHERE id = $1`, id)
}

// GetByName retrieves a room by its exact name.
func (p *PostgreSQLRoomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	return p.getOne(ctx, `SELECT id, name, description, created_by, created_at FROM rooms WHERE name = $1`, name)
}

func (p *PostgreSQLRoomRepository) getOne(ctx context.Context, query string, arg any) (*domain.Room, error) {
	querier := database.GetTx(ctx, p.db)

	var room domain.Room
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.CreatedBy,
		&room.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get room")
	}
	return &room, nil
}

// ListByMember returns the rooms userID belongs to, ordered by name.
func (p *PostgreSQLRoomRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT r.id, r.name, r.description, r.created_by, r.created_at
			  FROM rooms r
			  JOIN room_members m ON m.room_id = r.id
			  WHERE m.user_id = $1
			  ORDER BY r.name ASC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rooms")
	}
	defer func() {
		_ = rows.Close()
	}()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.CreatedBy, &room.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan room")
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate rooms")
	}
	return rooms, nil
}

// AddMember adds userID to roomID and reports whether a new membership was created.
func (p *PostgreSQLRoomRepository) AddMember(
	ctx context.Context,
	roomID, userID uuid.UUID,
	joinedAt time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO room_members (room_id, user_id, joined_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (room_id, user_id) DO NOTHING`

	result, err := querier.ExecContext(ctx, query, roomID, userID, joinedAt)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to add room member")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get affected rows")
	}
	return rows == 1, nil
}

// IsMember reports whether userID belongs to roomID.
func (p *PostgreSQLRoomRepository) IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	var exists bool
	err := querier.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM room_members WHERE room_id = $1 AND user_id = $2)`,
		roomID,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check room membership")
	}
	return exists, nil
}

// ListMembers returns the members of roomID ordered by username.
func (p *PostgreSQLRoomRepository) ListMembers(ctx context.Context, roomID uuid.UUID) ([]*domain.RoomMember, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT m.room_id, m.user_id, u.username, u.is_online, m.joined_at
			  FROM room_members m
			  JOIN users u ON u.id = m.user_id
			  WHERE m.room_id = $1
			  ORDER BY u.username ASC`

	rows, err := querier.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list room members")
	}
	defer func() {
		_ = rows.Close()
	}()

	members := make([]*domain.RoomMember, 0)
	for rows.Next() {
		var member domain.RoomMember
		if err := rows.Scan(&member.RoomID, &member.UserID, &member.Username, &member.IsOnline, &member.JoinedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan room member")
		}
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate room members")
	}
	return members, nil
}
