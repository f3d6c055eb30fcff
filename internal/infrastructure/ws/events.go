package ws

// Client → server event types.
const (
	JoinRoom    = "room.join"
	ChatMessage = "chat.message"
)

// Server → client event types.
const (
	RoomJoined      = "room.joined"
	MessageReceived = "message"

	ErrorEvent          = "error"
	AuthenticationError = "error.auth"
	JoinFailed          = "error.join"
)
