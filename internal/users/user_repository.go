package users

import (
	"github.com/JungleeAadmi/component-storage/internal/repository"
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, passwordHash string, role string) (*models.User, error)
	GetUser(id int) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateRole(id int, role string) (*models.User, error)
}

var userColumns = []interface{}{"id", "username", "fullname", "password_hash", "role", "created_at"}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, passwordHash string, role string) (*models.User, error) {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"password_hash": passwordHash,
			"username":      req.Username,
			"fullname":      req.Fullname,
			"role":          role,
		}).
		Returning("id")

	user := models.User{
		Username: req.Username,
		Fullname: req.Fullname,
		Role:     role,
	}
	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		return nil, custom_error.FromStore(err, "username is already taken")
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	user, err := r.findBy(goqu.Ex{"id": id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, custom_error.NotFound("user", id)
	}
	return user, nil
}

// FindByUsername returns nil without an error when no such user exists.
func (r *userRepositoryImpl) FindByUsername(username string) (*models.User, error) {
	return r.findBy(goqu.Ex{"username": username})
}

func (r *userRepositoryImpl) ListUsers() ([]models.User, error) {
	query := r.repository.GoquDBWrapper.
		Select(userColumns...).
		From("users").
		Order(goqu.I("username").Asc())

	users := []models.User{}
	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, custom_error.FromStore(err, "failed to list users")
	}

	return users, nil
}

func (r *userRepositoryImpl) UpdateRole(id int, role string) (*models.User, error) {
	query := r.repository.GoquDBWrapper.Update("users").
		Set(goqu.Record{"role": role}).
		Where(goqu.Ex{"id": id}).
		Returning(userColumns...)

	var user models.User
	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, custom_error.FromStore(err, "failed to update user role")
	}
	if !found {
		return nil, custom_error.NotFound("user", id)
	}

	return &user, nil
}

func (r *userRepositoryImpl) findBy(condition goqu.Ex) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select(userColumns...).
		From("users").
		Where(condition)

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, custom_error.FromStore(err, "failed to get user")
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}
