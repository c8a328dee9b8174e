package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/graceflow/internal/db"
	"github.com/terraincognita07/graceflow/internal/models"
	"github.com/terraincognita07/graceflow/internal/security"
	"github.com/terraincognita07/graceflow/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrUnknownUser       = errors.New("user not found")
	ErrPasswordsMismatch = errors.New("passwords do not match")
)

type PasswordResetStore interface {
	FindByNormalizedEmail(email string) (models.User, error)
	UpdatePassword(userID uint, passwordHash string) error
}

// ResetPassword stores newPassword for the account, or a generated temporary
// password when newPassword is empty. It returns the password that was set.
func ResetPassword(users PasswordResetStore, emailRaw string, newPassword string) (string, error) {
	email := services.NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	user, err := users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s", ErrUnknownUser, email)
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	password := newPassword
	if password == "" {
		password, err = security.TemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", fmt.Errorf("generate temporary password: %w", err)
		}
	} else if err := services.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return "", fmt.Errorf("update user password: %w", err)
	}
	return password, nil
}

// RunResetPasswordCommand opens the database at dbPath and resets the
// password for email. With prompt set the new password is read twice from
// the terminal without echo; otherwise a temporary password is generated and
// printed.
func RunResetPasswordCommand(dbPath string, email string, prompt bool, out io.Writer) error {
	newPassword := ""
	if prompt {
		entered, err := promptNewPassword(os.Stdin, out)
		if err != nil {
			return err
		}
		newPassword = entered
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	password, err := ResetPassword(db.NewUserRepository(database), email, newPassword)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	if !prompt {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

func promptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "New password: ")
	first, err := readSecretLine(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := readSecretLine(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if first != second {
		return "", ErrPasswordsMismatch
	}
	return first, nil
}
