package domain

import "time"

// Session binds the single live token of a user. PK: user_id.
type Session struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	SessionID string    `json:"id" dynamodbav:"session_id"`
	Token     string    `json:"-" dynamodbav:"token"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
