package service

import (
	"errors"
	"fmt"
	"time"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
	"go-hris-suite/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrDepartmentNotFound = errors.New("department not found")
)

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error)
	DeleteUser(userID uuid.UUID) error
	UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, updaterID string) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=6"`
	FullName     string   `json:"full_name" validate:"required"`
	PhoneNumber  string   `json:"phone_number"`
	RoleID       uint     `json:"role_id" validate:"required"`
	DepartmentID *string  `json:"department_id"`
	Position     string   `json:"position"`
	HireDate     *string  `json:"hire_date"` // Format: YYYY-MM-DD
	BaseSalary   float64  `json:"base_salary"`
	Allowance    float64  `json:"allowance"`
}

type UpdateUserRequest struct {
	Email        string   `json:"email" validate:"required,email"`
	Password     *string  `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName     string   `json:"full_name" validate:"required"`
	PhoneNumber  string   `json:"phone_number"`
	RoleID       uint     `json:"role_id" validate:"required"`
	DepartmentID *string  `json:"department_id"`
	Position     string   `json:"position"`
	BaseSalary   *float64 `json:"base_salary"`
	Allowance    *float64 `json:"allowance"`
	IsActive     *bool    `json:"is_active"`
}

type userService struct {
	userRepo       repository.UserRepository
	privilegeRepo  repository.PrivilegeRepository
	roleRepo       repository.RoleRepository
	departmentRepo repository.DepartmentRepository
}

func NewUserService(userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository,
	roleRepo repository.RoleRepository, departmentRepo repository.DepartmentRepository) UserService {
	return &userService{
		userRepo:       userRepo,
		privilegeRepo:  privilegeRepo,
		roleRepo:       roleRepo,
		departmentRepo: departmentRepo,
	}
}

func (s *userService) resolveDepartment(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errors.New("invalid department_id")
	}
	if _, err := s.departmentRepo.FindByID(id); err != nil {
		return nil, ErrDepartmentNotFound
	}
	return &id, nil
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Check if email already exists
	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	// 3. Validate role exists
	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, errors.New("role not found")
	}

	// 4. Resolve department if provided
	departmentID, err := s.resolveDepartment(req.DepartmentID)
	if err != nil {
		return nil, err
	}

	// 5. Parse hire date if provided
	var hireDate *time.Time
	if req.HireDate != nil && *req.HireDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return nil, errors.New("invalid hire_date format, use YYYY-MM-DD")
		}
		hireDate = &parsed
	}

	// 6. Create user
	user := &model.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		RoleID:       &req.RoleID,
		DepartmentID: departmentID,
		Position:     req.Position,
		HireDate:     hireDate,
		BaseSalary:   req.BaseSalary,
		Allowance:    req.Allowance,
		IsActive:     true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	// 7. Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	// 8. Auto-assign privileges based on role
	user.Privileges = role.Privileges

	// 9. Save to database
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, updaterID string) (*model.User, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Find existing user
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 3. Check if email is being changed and already exists
	if req.Email != user.Email {
		existing, _ := s.userRepo.FindByEmail(req.Email)
		if existing != nil {
			return nil, ErrEmailExists
		}
	}

	// 4. Validate role exists
	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, errors.New("role not found")
	}

	// 5. Resolve department if provided
	departmentID, err := s.resolveDepartment(req.DepartmentID)
	if err != nil {
		return nil, err
	}

	// A role is immutable for the lifetime of a session: changing it
	// rotates the token version, forcing re-authentication.
	roleChanged := user.RoleID == nil || *user.RoleID != req.RoleID

	// 6. Update user fields
	user.Email = req.Email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.RoleID = &req.RoleID
	user.DepartmentID = departmentID
	user.Position = req.Position
	if req.BaseSalary != nil {
		user.BaseSalary = *req.BaseSalary
	}
	if req.Allowance != nil {
		user.Allowance = *req.Allowance
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = updaterID

	// 7. Update password if provided
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	// 8. Auto-update privileges based on role
	user.Privileges = role.Privileges

	if roleChanged {
		user.TokenVersion = uuid.New().String()
	}

	// 9. Save to database
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	// 10. Reload and return
	return s.userRepo.FindByID(userID)
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	return s.userRepo.Delete(userID)
}

func (s *userService) UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, updaterID string) (*model.User, error) {
	// 1. Find user
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 2. Get privileges
	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, errors.New("failed to find privileges")
	}

	// 3. Update privileges
	if err := s.userRepo.UpdatePrivileges(userID, privileges); err != nil {
		return nil, err
	}

	// 4. Update audit field
	user.UpdatedBy = updaterID
	s.userRepo.Update(user)

	// 5. Reload user with updated privileges
	return s.userRepo.FindByID(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}
