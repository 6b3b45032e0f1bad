package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/breakfree/internal/error_values"
	"github.com/limbo/breakfree/internal/repository"
	"github.com/limbo/breakfree/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo     repository.UsersRepositoryI
	profiles repository.ProfilesRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI, profilesRepo repository.ProfilesRepositoryI) *UserService {
	return &UserService{
		repo:     usersRepo,
		profiles: profilesRepo,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	passwordHash, err := Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	err = us.repo.Create(ctx, &entity.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, errorvalues.ErrUserExists
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user, err := us.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	// Habit profile comes into existence with the account. EnsureProfile
	// is idempotent so racing a concurrent login is harmless
	err = us.profiles.EnsureProfile(ctx, user.ID)
	if err != nil {
		return nil, errors.New("ensuring profile error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	// Lazy create-if-absent on first authenticated use, accounts
	// predating the profiles collection get one here
	err = us.profiles.EnsureProfile(ctx, user.ID)
	if err != nil {
		return nil, errors.New("ensuring profile error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req *ChangePasswordRequest) error {
	err := validate.Struct(*req)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return errorvalues.ErrBadPassword
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return errorvalues.ErrWrongCredentials
	}
	passwordHash, err := Hash(req.NewPassword)
	if err != nil {
		return errors.New("hashing password error: " + err.Error())
	}
	user.PasswordHash = passwordHash
	err = us.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository updating error: " + err.Error())
	}
	return nil
}

func (us *UserService) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository searching error: " + err.Error())
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return errorvalues.ErrWrongCredentials
	}
	err = us.repo.Delete(ctx, user.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository deletion error: " + err.Error())
	}
	return nil
}

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
