package app

import (
	"fmt"

	chatHTTP "github.com/allisson/securemessenger/internal/chat/http"
	chatRepository "github.com/allisson/securemessenger/internal/chat/repository"
	chatUseCase "github.com/allisson/securemessenger/internal/chat/usecase"
	"github.com/allisson/securemessenger/internal/database"
)

type chatComponents struct {
	roomRepository    lazy[chatUseCase.RoomRepository]
	messageRepository lazy[chatUseCase.MessageRepository]
	roomUseCase       lazy[chatUseCase.RoomUseCase]
	messageUseCase    lazy[chatUseCase.MessageUseCase]
	roomHandler       lazy[*chatHTTP.RoomHandler]
	messageHandler    lazy[*chatHTTP.MessageHandler]
}

func (c *Container) RoomRepository() (chatUseCase.RoomRepository, error) {
	return c.roomRepository.get(func() (chatUseCase.RoomRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for room repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return chatRepository.NewPostgreSQLRoomRepository(db), nil
		case database.DriverMySQL:
			return chatRepository.NewMySQLRoomRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

func (c *Container) MessageRepository() (chatUseCase.MessageRepository, error) {
	return c.messageRepository.get(func() (chatUseCase.MessageRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for message repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			return chatRepository.NewPostgreSQLMessageRepository(db), nil
		case database.DriverMySQL:
			return chatRepository.NewMySQLMessageRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

func (c *Container) RoomUseCase() (chatUseCase.RoomUseCase, error) {
	return c.roomUseCase.get(func() (chatUseCase.RoomUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for room use case: %w", err)
		}
		roomRepo, err := c.RoomRepository()
		if err != nil {
			return nil, err
		}
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}
		return chatUseCase.NewRoomUseCaseWithMetrics(chatUseCase.NewRoomUseCase(txManager, roomRepo), bm), nil
	})
}

func (c *Container) MessageUseCase() (chatUseCase.MessageUseCase, error) {
	return c.messageUseCase.get(func() (chatUseCase.MessageUseCase, error) {
		roomRepo, err := c.RoomRepository()
		if err != nil {
			return nil, err
		}
		messageRepo, err := c.MessageRepository()
		if err != nil {
			return nil, err
		}
		encryption, err := c.EncryptionUseCase()
		if err != nil {
			return nil, err
		}
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := chatUseCase.NewMessageUseCase(roomRepo, messageRepo, encryption, c.Logger())
		return chatUseCase.NewMessageUseCaseWithMetrics(useCase, bm), nil
	})
}

func (c *Container) RoomHandler() (*chatHTTP.RoomHandler, error) {
	return c.roomHandler.get(func() (*chatHTTP.RoomHandler, error) {
		useCase, err := c.RoomUseCase()
		if err != nil {
			return nil, err
		}
		return chatHTTP.NewRoomHandler(useCase, c.Logger()), nil
	})
}

func (c *Container) MessageHandler() (*chatHTTP.MessageHandler, error) {
	return c.messageHandler.get(func() (*chatHTTP.MessageHandler, error) {
		useCase, err := c.MessageUseCase()
		if err != nil {
			return nil, err
		}
		return chatHTTP.NewMessageHandler(useCase, c.Logger()), nil
	})
}
