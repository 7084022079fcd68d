package models

import (
	"github.com/rs/zerolog"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// Credentials is an Instagram username/password pair.
// It is transient: it is never persisted and its password never reaches a log line.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidationMessage implements utils.ValidationMessenger.
func (c *Credentials) ValidationMessage() string {
	return constants.MsgCredentialsRequired
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler with the password redacted.
func (c Credentials) MarshalZerologObject(e *zerolog.Event) {
	e.Str("username", c.Username).Str("password", constants.LogRedactedValue)
}

// String keeps the password out of %v formatting.
func (c Credentials) String() string {
	return "Credentials{username=" + c.Username + ", password=" + constants.LogRedactedValue + "}"
}

// PostPayload is the content of a single Instagram post.
type PostPayload struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	Caption  string `json:"caption" validate:"required"`
}

// PostRequest is the body accepted by /api/instagram/post.
type PostRequest struct {
	Credentials
	PostPayload
}

// ValidationMessage implements utils.ValidationMessenger.
func (r *PostRequest) ValidationMessage() string {
	return constants.MsgAllFieldsRequired
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler with the password redacted.
func (r PostRequest) MarshalZerologObject(e *zerolog.Event) {
	r.Credentials.MarshalZerologObject(e)
	e.Str("image_url", r.ImageURL).Int("caption_length", len(r.Caption))
}
