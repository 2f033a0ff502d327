package domain

// MessageType discriminates the chat message content kind
type MessageType int

const (
	MessageText  MessageType = 0
	MessageImage MessageType = 1
	MessageAudio MessageType = 2
)

// ChatMessage mirrors a document in a tenant's chat sub-collection (or the
// shared chat collection). Field names follow the Firestore schema; optional
// fields decode to their zero value when absent.
type ChatMessage struct {
	IDFrom     string      `json:"idFrom" firestore:"idFrom"`
	IDTo       string      `json:"idTo" firestore:"idTo"`
	Type       MessageType `json:"type" firestore:"type"`
	Content    string      `json:"content" firestore:"content"`
	SenderName string      `json:"nomeDe" firestore:"nomeDe"`
	ImageURL   string      `json:"urlImagem" firestore:"urlImagem"`

	// Hand-off fields, set at most once per reassignment.
	TransferID string `json:"idTransferencia" firestore:"idTransferencia"`
	AgentID    string `json:"idAtendente" firestore:"idAtendente"`

	// End customer the conversation belongs to.
	CustomerID string `json:"idUsuario" firestore:"idUsuario"`
}
