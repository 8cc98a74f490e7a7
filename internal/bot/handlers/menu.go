package handlers

import (
	"github.com/go-telegram/bot/models"

	"github.com/ozodbek/bdaybot/internal/config"
)

// menuKeyboard builds the persistent reply keyboard shown after /start and
// after each completed flow. The message handler routes on these labels by
// exact match.
func menuKeyboard(msgs config.Messages) *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: msgs.ButtonAdd}},
			{{Text: msgs.ButtonList}, {Text: msgs.ButtonTime}},
		},
		ResizeKeyboard: true,
	}
}
