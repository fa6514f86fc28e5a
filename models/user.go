package models

// User holds the push routing details of a reminder receiver.
type User struct {
	ID                   string `firestore:"-" bson:"id" json:"id"`
	FCMToken             string `firestore:"fcmToken" bson:"fcmToken" json:"-"`
	NotificationsEnabled *bool  `firestore:"notificationsEnabled" bson:"notificationsEnabled,omitempty" json:"notificationsEnabled,omitempty"`
}

// CanReceivePush is false when the user has no token or has opted out.
// A missing notificationsEnabled field counts as enabled.
func (u *User) CanReceivePush() bool {
	if u == nil || u.FCMToken == "" {
		return false
	}
	return u.NotificationsEnabled == nil || *u.NotificationsEnabled
}
