package models

// Значения поля invocationSource.
const (
	SourceDialogCodeHook      = "DialogCodeHook"
	SourceFulfillmentCodeHook = "FulfillmentCodeHook"
)

// Типы dialogAction.
const (
	ActionElicitSlot    = "ElicitSlot"
	ActionElicitIntent  = "ElicitIntent"
	ActionConfirmIntent = "ConfirmIntent"
	ActionDelegate      = "Delegate"
	ActionClose         = "Close"
)

// Состояния завершения для dialogAction типа Close.
const (
	FulfillmentFulfilled = "Fulfilled"
	FulfillmentFailed    = "Failed"
)

const (
	ContentTypePlainText = "PlainText"
	ContentTypeCard      = "application/vnd.amazonaws.card.generic"
)

// Request описывает событие code hook, которое присылает Lex на каждый ход диалога.
// См. https://docs.aws.amazon.com/lex/latest/dg/lambda-input-response-format.html
type Request struct {
	MessageVersion    string            `json:"messageVersion,omitempty"`
	InvocationSource  string            `json:"invocationSource"`
	UserID            string            `json:"userId"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
	OutputDialogMode  string            `json:"outputDialogMode,omitempty"`
	SessionAttributes SessionAttributes `json:"sessionAttributes"`
	Bot               Bot               `json:"bot"`
	CurrentIntent     CurrentIntent     `json:"currentIntent"`
}

type Bot struct {
	Name    string `json:"name"`
	Alias   string `json:"alias,omitempty"`
	Version string `json:"version,omitempty"`
}

// CurrentIntent описывает распознанное намерение пользователя и заполненные слоты.
type CurrentIntent struct {
	Name               string `json:"name"`
	Slots              Slots  `json:"slots"`
	ConfirmationStatus string `json:"confirmationStatus,omitempty"`
}

// Slots хранит значения слотов; nil означает, что слот не заполнен.
type Slots map[string]*string

// Value возвращает значение слота или пустую строку, если слот не заполнен.
func (s Slots) Value(name string) string {
	if v, ok := s[name]; ok && v != nil {
		return *v
	}
	return ""
}

// Response описывает ответ сервера.
type Response struct {
	SessionAttributes SessionAttributes `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}

// DialogAction сообщает Lex, как продолжать диалог.
// Набор заполненных полей зависит от Type, поэтому строить его следует через пакет dialog.
type DialogAction struct {
	Type             string        `json:"type"`
	FulfillmentState string        `json:"fulfillmentState,omitempty"`
	Message          *Message      `json:"message,omitempty"`
	IntentName       string        `json:"intentName,omitempty"`
	Slots            Slots         `json:"slots,omitempty"`
	SlotToElicit     string        `json:"slotToElicit,omitempty"`
	ResponseCard     *ResponseCard `json:"responseCard,omitempty"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// ResponseCard описывает набор карточек с кнопками.
type ResponseCard struct {
	Version            int          `json:"version"`
	ContentType        string       `json:"contentType"`
	GenericAttachments []Attachment `json:"genericAttachments"`
}

type Attachment struct {
	Title    string   `json:"title"`
	SubTitle string   `json:"subTitle"`
	Buttons  []Button `json:"buttons"`
}

// Button - вариант выбора: Text видит пользователь, Value уходит в Lex как реплика.
type Button struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}
