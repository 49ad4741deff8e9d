package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/chat/domain"
	"github.com/allisson/securemessenger/internal/database"
)

type roomUseCase struct {
	txManager database.TxManager
	roomRepo  RoomRepository
}

// NewRoomUseCase creates a new RoomUseCase.
func NewRoomUseCase(txManager database.TxManager, roomRepo RoomRepository) RoomUseCase {
	return &roomUseCase{
		txManager: txManager,
		roomRepo:  roomRepo,
	}
}

func (r *roomUseCase) CreateRoom(ctx context.Context, input *domain.CreateRoomInput) (*domain.Room, error) {
	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) < domain.MinRoomNameLength {
		return nil, domain.ErrInvalidRoomName
	}

	if _, err := r.roomRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrRoomNameTaken
	} else if !errors.Is(err, domain.ErrRoomNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	room := &domain.Room{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   input.CreatorID,
		CreatedAt:   now,
	}

	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.roomRepo.Create(ctx, room); err != nil {
			return err
		}
		_, err := r.roomRepo.AddMember(ctx, room.ID, input.CreatorID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomUseCase) JoinRoom(ctx context.Context, name string, userID uuid.UUID) (*domain.JoinRoomOutput, error) {
	room, err := r.roomRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	added, err := r.roomRepo.AddMember(ctx, room.ID, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &domain.JoinRoomOutput{Room: room, AlreadyMember: !added}, nil
}

// JoinDefaultRoom tolerates concurrent registrations racing to create the default room:
// the loser's insert is a no-op and both join whichever row won.
func (r *roomUseCase) JoinDefaultRoom(ctx context.Context, userID uuid.UUID) error {
	now := time.Now().UTC()
	candidate := &domain.Room{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        domain.DefaultRoomName,
		Description: domain.DefaultRoomDescription,
		CreatedBy:   userID,
		CreatedAt:   now,
	}

	if _, err := r.roomRepo.CreateIfAbsent(ctx, candidate); err != nil {
		return err
	}

	room, err := r.roomRepo.GetByName(ctx, domain.DefaultRoomName)
	if err != nil {
		return err
	}

	_, err = r.roomRepo.AddMember(ctx, room.ID, userID, now)
	return err
}

func (r *roomUseCase) ListRooms(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	return r.roomRepo.ListByMember(ctx, userID)
}

func (r *roomUseCase) ListMembers(ctx context.Context, roomID, userID uuid.UUID) ([]*domain.RoomMember, error) {
	if err := requireMembership(ctx, r.roomRepo, roomID, userID); err != nil {
		return nil, err
	}
	return r.roomRepo.ListMembers(ctx, roomID)
}

// requireMembership returns ErrRoomNotFound for unknown rooms and ErrNotRoomMember for outsiders.
func requireMembership(ctx context.Context, roomRepo RoomRepository, roomID, userID uuid.UUID) error {
	if _, err := roomRepo.GetByID(ctx, roomID); err != nil {
		return err
	}

	isMember, err := roomRepo.IsMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return domain.ErrNotRoomMember
	}
	return nil
}
