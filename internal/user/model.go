package user

import (
	"net/http"

	"github.com/shareit-go/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "User not found.")
	ErrEmailConflict = apperror.New(http.StatusConflict, "A user with such an email has already been created.")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "You must specify the name and email.")
)

// User represents a user in the system. The booking engine only ever
// reads ID, Name and Email.
type User struct {
	ID    int64
	Name  string
	Email string
}
