// internal/workers/communication/notify-community/models.go
package notifycommunity

type Input struct {
	IssueIndex int      `json:"issueIndex"`
	Threshold  *float64 `json:"threshold,omitempty"`
	SnapshotID string   `json:"snapshotId,omitempty"`
	Recipients []string `json:"recipients,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	SnapshotID     string   `json:"snapshotId,omitempty"`
	IssueTitle     string   `json:"issueTitle"`
	Summary        string   `json:"summary"`
	SNSMessageID   string   `json:"snsMessageId,omitempty"`
	EmailMessageID string   `json:"emailMessageId,omitempty"`
	Channels       []string `json:"channels"`
}
