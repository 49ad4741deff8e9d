package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/chat/domain"
	"github.com/allisson/securemessenger/internal/database"
	apperrors "github.com/allisson/securemessenger/internal/errors"
)

const mysqlDuplicateEntry = 1062

// MySQLRoomRepository handles rooms and memberships for MySQL. IDs are stored as BINARY(16).
type MySQLRoomRepository struct {
	db *sql.DB
}

// NewMySQLRoomRepository creates a new MySQLRoomRepository.
func NewMySQLRoomRepository(db *sql.DB) *MySQLRoomRepository {
	return &MySQLRoomRepository{db: db}
}

func (m *MySQLRoomRepository) insertArgs(room *domain.Room) ([]any, error) {
	id, err := room.ID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal room id")
	}
	createdBy, err := room.CreatedBy.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal creator id")
	}
	return []any{id, room.Name, room.Description, createdBy, room.CreatedAt}, nil
}

// Create inserts a room. A duplicate name returns ErrRoomNameTaken.
func (m *MySQLRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	querier := database.GetTx(ctx, m.db)

	args, err := m.insertArgs(room)
	if err != nil {
		return err
	}

	query := `INSERT INTO rooms (id, name, description, created_by, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.ErrRoomNameTaken
		}
		return apperrors.Wrap(err, "failed to create room")
	}
	return nil
}

// CreateIfAbsent inserts a room unless one with the same name exists.
func (m *MySQLRoomRepository) CreateIfAbsent(ctx context.Context, room *domain.Room) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	args, err := m.insertArgs(room)
	if err != nil {
		return false, err
	}

	query := `INSERT INTO rooms (id, name, description, created_by, created_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE id = id`

	result, err := querier.ExecContext(ctx, query, args...)
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
func (m *MySQLRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal room id")
	}
	return m.getOne(ctx, `SELECT id, name, description, created_by, created_at FROM rooms WHERE id = ?`, idBytes)
}

// GetByName retrieves a room by its exact name.
func (m *MySQLRoomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	return m.getOne(ctx, `SELECT id, name, description, created_by, created_at FROM rooms WHERE name = ?`, name)
}

func (m *MySQLRoomRepository) getOne(ctx context.Context, query string, arg any) (*domain.Room, error) {
	querier := database.GetTx(ctx, m.db)

	room, err := scanMySQLRoom(querier.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get room")
	}
	return room, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var id, createdBy []byte
	if err := row.Scan(&id, &room.Name, &room.Description, &createdBy, &room.CreatedAt); err != nil {
		return nil, err
	}
	if err := room.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal room id")
	}
	if err := room.CreatedBy.UnmarshalBinary(createdBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal creator id")
	}
	return &room, nil
}

// ListByMember returns the rooms userID belongs to, ordered by name.
func (m *MySQLRoomRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT r.id, r.name, r.description, r.created_by, r.created_at
			  FROM rooms r
			  JOIN room_members m ON m.room_id = r.id
			  WHERE m.user_id = ?
			  ORDER BY r.name ASC`

	rows, err := querier.QueryContext(ctx, query, userIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rooms")
	}
	defer func() {
		_ = rows.Close()
	}()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanMySQLRoom(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan room")
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate rooms")
	}
	return rooms, nil
}

// AddMember adds userID to roomID and reports whether a new membership was created.
func (m *MySQLRoomRepository) AddMember(
	ctx context.Context,
	roomID, userID uuid.UUID,
	joinedAt time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	roomIDBytes, err := roomID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal room id")
	}
	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO room_members (room_id, user_id, joined_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE room_id = room_id`

	result, err := querier.ExecContext(ctx, query, roomIDBytes, userIDBytes, joinedAt)
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
func (m *MySQLRoomRepository) IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	roomIDBytes, err := roomID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal room id")
	}
	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal user id")
	}

	var exists bool
	err = querier.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM room_members WHERE room_id = ? AND user_id = ?)`,
		roomIDBytes,
		userIDBytes,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check room membership")
	}
	return exists, nil
}

// ListMembers returns the members of roomID ordered by username.
func (m *MySQLRoomRepository) ListMembers(ctx context.Context, roomID uuid.UUID) ([]*domain.RoomMember, error) {
	querier := database.GetTx(ctx, m.db)

	roomIDBytes, err := roomID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal room id")
	}

	query := `SELECT m.room_id, m.user_id, u.username, u.is_online, m.joined_at
			  FROM room_members m
			  JOIN users u ON u.id = m.user_id
			  WHERE m.room_id = ?
			  ORDER BY u.username ASC`

	rows, err := querier.QueryContext(ctx, query, roomIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list room members")
	}
	defer func() {
		_ = rows.Close()
	}()

	members := make([]*domain.RoomMember, 0)
	for rows.Next() {
		var member domain.RoomMember
		var memberRoomID, memberUserID []byte
		if err := rows.Scan(&memberRoomID, &memberUserID, &member.Username, &member.IsOnline, &member.JoinedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan room member")
		}
		if err := member.RoomID.UnmarshalBinary(memberRoomID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal room id")
		}
		if err := member.UserID.UnmarshalBinary(memberUserID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal user id")
		}
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate room members")
	}
	return members, nil
}
