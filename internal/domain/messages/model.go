package messages

type Sender string

const (
	SenderAdmin    Sender = "ADMIN"
	SenderResident Sender = "RESIDENT"
)

func (s Sender) Valid() bool {
	return s == SenderAdmin || s == SenderResident
}

// TimestampLayout is the time-of-day format stored on each message.
const TimestampLayout = "03:04 PM"

// ChatMessage keeps the camelCase wire names of the room thread format.
type ChatMessage struct {
	ID        int64  `json:"id" yaml:"id"`
	RoomID    int64  `json:"roomId" yaml:"roomId"`
	Sender    Sender `json:"sender" yaml:"sender"`
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

type SendInput struct {
	RoomID int64
	Sender Sender
	Text   string
}
