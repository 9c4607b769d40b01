package services

import (
	"errors"
	"strings"
	"time"

	"github.com/TyCGroup/serviciosgenerales/models"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService owns staff accounts: login, self-registration,
// admin provisioning, profile edits and the activation switch.
// Accounts are deactivated, never deleted.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Authenticate checks the credentials and stamps the access time.
// Unknown email, wrong password and a deactivated account all return
// the same generic error so the response does not reveal which.
func (s *AccountService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrInvalidOrInactive
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.ErrInvalidOrInactive
	}

	if !user.Active {
		return nil, utils.ErrInvalidOrInactive
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_access_at", now).Error; err != nil {
		return nil, err
	}
	user.LastAccessAt = &now
	return &user, nil
}

// Register creates an account on first sight of a new identity. The
// role comes from the naming rule, never from the request.
func (s *AccountService) Register(email, password, name string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.DefaultRoleForEmail(email),
		Active:   true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, utils.NewValidationError("el correo ya está registrado")
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser is the administrative provisioning path, with an explicit
// role and activation state instead of the naming rule. The credential
// row is written first, then the profile fields, mirroring the
// identity/account split of the hosted predecessor. If the profile
// write fails after the credential committed, the orphan is deleted
// best-effort and the failure surfaces as a ProvisionError so an
// operator knows to reconcile.
func (s *AccountService) CreateUser(email, password, name, role string, active bool) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleLimpieza {
		return nil, utils.NewValidationError("rol desconocido: %s", role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleLimpieza,
		Active:   false,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, utils.NewValidationError("el correo ya está registrado")
		}
		return nil, err
	}

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"role":   role,
		"active": active,
	}).Error; err != nil {
		s.db.Delete(&models.User{}, user.ID)
		return nil, &utils.ProvisionError{
			Message: "la cuenta quedó a medio crear, contacta al operador",
			Cause:   err,
		}
	}

	user.Role = role
	user.Active = active
	return &user, nil
}

// UpdateProfile edits name, role and activation. The email is locked
// after creation and cannot be changed here.
func (s *AccountService) UpdateProfile(id uint, name, role *string, active *bool) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "usuario"}
		}
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if role != nil {
		if *role != models.RoleAdmin && *role != models.RoleLimpieza {
			return nil, utils.NewValidationError("rol desconocido: %s", *role)
		}
		user.Role = *role
	}
	if active != nil {
		user.Active = *active
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetActive flips the activation switch. A deactivated account fails
// authentication and gets cut off by the auth middleware on its next
// request.
func (s *AccountService) SetActive(id uint, active bool) (*models.User, error) {
	return s.UpdateProfile(id, nil, nil, &active)
}

// ListUsers returns every account, newest first.
func (s *AccountService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// GetByID fetches one account.
func (s *AccountService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "usuario"}
		}
		return nil, err
	}
	return &user, nil
}

// isDuplicate detects a unique-constraint violation across the mysql
// and sqlite drivers.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
