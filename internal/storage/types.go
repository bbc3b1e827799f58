package storage

// ConfirmationEntry 破坏性操作的确认记录
// ConfirmationEntry records the answer to a destructive-action prompt
type ConfirmationEntry struct {
	Action    string `json:"action"`
	Target    string `json:"target"`
	Decision  string `json:"decision"`
	CreatedAt string `json:"created_at"`
}

const (
	DecisionConfirmed = "confirmed"
	DecisionDeclined  = "declined"
)
