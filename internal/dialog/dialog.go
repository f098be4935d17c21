// Package dialog строит ответы Lex. Других способов собрать models.Response в сервисе нет.
package dialog

import (
	"fmt"

	"github.com/windhamg/moviebot-lambda/internal/models"
)

// ButtonsPerCard - сколько кнопок Lex показывает на одной карточке.
const ButtonsPerCard = 5

// PlainText оборачивает текст в сообщение Lex.
func PlainText(content string) *models.Message {
	return &models.Message{ContentType: models.ContentTypePlainText, Content: content}
}

// ElicitSlot просит пользователя заполнить один конкретный слот.
func ElicitSlot(session models.SessionAttributes, intentName string, slots models.Slots, slotToElicit string, message *models.Message, card *models.ResponseCard) *models.Response {
	return &models.Response{
		SessionAttributes: session,
		DialogAction: models.DialogAction{
			Type:         models.ActionElicitSlot,
			IntentName:   intentName,
			Slots:        slots,
			SlotToElicit: slotToElicit,
			Message:      message,
			ResponseCard: card,
		},
	}
}

// ElicitIntent возвращает управление Lex без предположений о следующем интенте.
func ElicitIntent(session models.SessionAttributes, message *models.Message, card *models.ResponseCard) *models.Response {
	return &models.Response{
		SessionAttributes: session,
		DialogAction: models.DialogAction{
			Type:         models.ActionElicitIntent,
			Message:      message,
			ResponseCard: card,
		},
	}
}

// ConfirmIntent запрашивает у пользователя подтверждение (да/нет).
func ConfirmIntent(session models.SessionAttributes, intentName string, slots models.Slots, message *models.Message, card *models.ResponseCard) *models.Response {
	return &models.Response{
		SessionAttributes: session,
		DialogAction: models.DialogAction{
			Type:         models.ActionConfirmIntent,
			IntentName:   intentName,
			Slots:        slots,
			Message:      message,
			ResponseCard: card,
		},
	}
}

// Delegate передаёт Lex решение о следующем шаге с текущими слотами.
func Delegate(session models.SessionAttributes, slots models.Slots) *models.Response {
	return &models.Response{
		SessionAttributes: session,
		DialogAction: models.DialogAction{
			Type:  models.ActionDelegate,
			Slots: slots,
		},
	}
}

// Close завершает ход диалога. state - models.FulfillmentFulfilled или models.FulfillmentFailed.
func Close(session models.SessionAttributes, state string, message *models.Message) *models.Response {
	return &models.Response{
		SessionAttributes: session,
		DialogAction: models.DialogAction{
			Type:             models.ActionClose,
			FulfillmentState: state,
			Message:          message,
		},
	}
}

// BuildResponseCard раскладывает варианты по карточкам, не больше ButtonsPerCard на каждой.
// Если карточек получилось несколько, к заголовку добавляется номер страницы.
// Пустой options даёт карточку без вложений.
func BuildResponseCard(title, subtitle string, options []models.Button) *models.ResponseCard {
	pages := (len(options) + ButtonsPerCard - 1) / ButtonsPerCard

	attachments := make([]models.Attachment, 0, pages)
	for i := 0; i < pages; i++ {
		end := min((i+1)*ButtonsPerCard, len(options))

		cardTitle := title
		if pages > 1 {
			cardTitle = fmt.Sprintf("%s - page %d", title, i+1)
		}

		buttons := make([]models.Button, end-i*ButtonsPerCard)
		copy(buttons, options[i*ButtonsPerCard:end])

		attachments = append(attachments, models.Attachment{
			Title:    cardTitle,
			SubTitle: subtitle,
			Buttons:  buttons,
		})
	}

	return &models.ResponseCard{
		Version:            1,
		ContentType:        models.ContentTypeCard,
		GenericAttachments: attachments,
	}
}
