package repository

import (
	"context"
	"fmt"

	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrBoyIDExists     = dao.ErrBoyIDExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByStaffID(ctx context.Context, staffID string) (dao.User, error)
	FindByBoyID(ctx context.Context, boyID string) (dao.User, error)
	FindByRole(ctx context.Context, role string) ([]dao.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	var staffID, boyID *string
	if u.StaffID != "" {
		staffID = &u.StaffID
	}
	if u.BoyID != "" {
		boyID = &u.BoyID
	}

	return dao.User{
		ID:             u.ID,
		Email:          u.Email,
		Password:       u.Password,
		Role:           u.Role,
		Name:           u.Name,
		StaffID:        staffID,
		BoyID:          boyID,
		Phone:          u.Phone,
		UPIID:          u.UPIID,
		FirstTimeLogin: u.FirstTimeLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	user := domain.User{
		ID:             u.ID,
		Email:          u.Email,
		Password:       u.Password,
		Role:           u.Role,
		Name:           u.Name,
		Phone:          u.Phone,
		UPIID:          u.UPIID,
		FirstTimeLogin: u.FirstTimeLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.StaffID != nil {
		user.StaffID = *u.StaffID
	}
	if u.BoyID != nil {
		user.BoyID = *u.BoyID
	}

	return user
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	result := make([]domain.User, len(users))
	for i, u := range users {
		result[i] = r.daoToDomain(u)
	}

	return result
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByStaffID(ctx context.Context, staffID string) (domain.User, error) {
	user, err := r.dao.FindByStaffID(ctx, staffID)
	if err != nil {
		return domain.User{}, err
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindByBoyID(ctx context.Context, boyID string) (domain.User, error) {
	user, err := r.dao.FindByBoyID(ctx, boyID)
	if err != nil {
		return domain.User{}, err
	}

	return r.daoToDomain(user), nil
}

func (r *UserRepository) FindBoys(ctx context.Context) ([]domain.User, error) {
	boys, err := r.dao.FindByRole(ctx, domain.RoleBoy)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	return r.daosToDomain(boys), nil
}

func (r *UserRepository) CountBoys(ctx context.Context) (int64, error) {
	count, err := r.dao.CountByRole(ctx, domain.RoleBoy)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByRole -> %w", err)
	}

	return count, nil
}
