package auth

import (
	"github.com/CompaniaApp/Compania-Backend/internal/db"
	"github.com/CompaniaApp/Compania-Backend/internal/utils"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		UserType:  session.UserType,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
