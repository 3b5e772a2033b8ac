package services

import (
	"errors"

	apierrors "github.com/rayysidd/mun/internal/errors"
	"gorm.io/gorm"
)

var (
	ErrCredentialsRequired = apierrors.New(apierrors.KindValidation, "Username and password are required")
	ErrPasswordTooShort    = apierrors.New(apierrors.KindValidation, "Password must be at least 6 characters")
	ErrUsernameTaken       = apierrors.New(apierrors.KindConflict, "User already exists")
	ErrInvalidCredentials  = apierrors.New(apierrors.KindAuthentication, "Invalid username or password")
	ErrUserNotFound        = apierrors.New(apierrors.KindNotFound, "User not found")
)

var (
	ErrEventFieldsRequired  = apierrors.New(apierrors.KindValidation, "All fields are required to create an event.")
	ErrEventNameTaken       = apierrors.New(apierrors.KindConflict, "An event with this name already exists. Please choose another name.")
	ErrJoinFieldsRequired   = apierrors.New(apierrors.KindValidation, "Event name, passcode, and country are required.")
	ErrEventNameNotFound    = apierrors.New(apierrors.KindNotFound, "An event with this name was not found.")
	ErrIncorrectPasscode    = apierrors.New(apierrors.KindAuthentication, "Incorrect passcode for this event.")
	ErrAlreadyJoined        = apierrors.New(apierrors.KindConflict, "You have already joined this event.")
	ErrCountryTaken         = apierrors.New(apierrors.KindConflict, "This country is already represented in the event.")
	ErrNotParticipant       = apierrors.New(apierrors.KindAuthorization, "Forbidden: You are not a participant in this event.")
	ErrEventNotFound        = apierrors.New(apierrors.KindNotFound, "Event not found.")
	ErrNotInEvent           = apierrors.New(apierrors.KindNotFound, "You were not a participant in this event.")
	ErrSourceFieldsRequired = apierrors.New(apierrors.KindValidation, "Source title and content are required.")
	ErrInvalidSourceType    = apierrors.New(apierrors.KindValidation, "Source type must be one of url, text, or pdf.")
)

var (
	ErrSpeechFieldsRequired = apierrors.New(apierrors.KindValidation, "Content, topic, and country are required.")
	ErrSpeechNotFound       = apierrors.New(apierrors.KindNotFound, "Speech not found")
	ErrNotSpeechOwner       = apierrors.New(apierrors.KindAuthorization, "User not authorized")
)

var (
	ErrChatFieldsRequired     = apierrors.New(apierrors.KindValidation, "Topic and country are required.")
	ErrAIServiceNotConfigured = apierrors.New(apierrors.KindUnavailable, "AI service is not configured")
	ErrAIGenerationFailed     = apierrors.New(apierrors.KindUpstream, "Error generating response")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
