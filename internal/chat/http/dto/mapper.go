package dto

import (
	"github.com/google/uuid"

	"github.com/allisson/securemessenger/internal/chat/domain"
)

// ToCreateRoomInput converts a CreateRoomRequest DTO to a CreateRoomInput.
func ToCreateRoomInput(req CreateRoomRequest, creatorID uuid.UUID) *domain.CreateRoomInput {
	return &domain.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   creatorID,
	}
}

// ToSendMessageInput converts a SendMessageRequest DTO to a SendMessageInput.
func ToSendMessageInput(req SendMessageRequest, roomID, senderID uuid.UUID, senderUsername string) *domain.SendMessageInput {
	return &domain.SendMessageInput{
		RoomID:         roomID,
		SenderID:       senderID,
		SenderUsername: senderUsername,
		Content:        req.Content,
	}
}

func ToRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		CreatedBy:   room.CreatedBy,
		CreatedAt:   room.CreatedAt,
	}
}

func ToJoinRoomResponse(output *domain.JoinRoomOutput) JoinRoomResponse {
	return JoinRoomResponse{
		Room:          ToRoomResponse(output.Room),
		AlreadyMember: output.AlreadyMember,
	}
}

// ToListRoomsResponse always returns a non-nil Data slice so it encodes as [].
func ToListRoomsResponse(rooms []*domain.Room) ListRoomsResponse {
	data := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		data = append(data, ToRoomResponse(room))
	}
	return ListRoomsResponse{Data: data}
}

func ToListMembersResponse(members []*domain.RoomMember) ListMembersResponse {
	data := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		data = append(data, MemberResponse{
			UserID:   member.UserID,
			Username: member.Username,
			IsOnline: member.IsOnline,
			JoinedAt: member.JoinedAt,
		})
	}
	return ListMembersResponse{Data: data}
}

func ToMessageResponse(view *domain.MessageView) MessageResponse {
	return MessageResponse{
		ID:             view.ID,
		RoomID:         view.RoomID,
		SenderID:       view.SenderID,
		SenderUsername: view.SenderUsername,
		Content:        view.Content,
		Decrypted:      view.Decrypted,
		IsOwn:          view.IsOwn,
		CreatedAt:      view.CreatedAt,
	}
}

func ToListMessagesResponse(views []*domain.MessageView) ListMessagesResponse {
	data := make([]MessageResponse, 0, len(views))
	for _, view := range views {
		data = append(data, ToMessageResponse(view))
	}
	return ListMessagesResponse{Data: data}
}
