package repository

import (
	"context"
	"errors"

	"graphene-trace-portal/internal/domain/entity"
	domainRepo "graphene-trace-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected, result.Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, db, db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return r.first(ctx, db, db.WithContext(ctx).Where("normalized_email = ?", entity.NormalizeEmail(email)))
}

func (r *userRepository) LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, db, db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *userRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	if err := db.WithContext(ctx).Order("email").Find(&users).Error; err != nil {
		return nil, err
	}
	if err := loadRoles(ctx, db, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) first(ctx context.Context, db *gorm.DB, query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	users := []entity.User{user}
	if err := loadRoles(ctx, db, users); err != nil {
		return nil, err
	}
	return &users[0], nil
}

type userRoleRow struct {
	UserID         uuid.UUID
	ID             int
	Name           string
	NormalizedName string
}

// loadRoles fills Roles for every user with a single query, ordered by role id
func loadRoles(ctx context.Context, db *gorm.DB, users []entity.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(users))
	index := make(map[uuid.UUID]int, len(users))
	for i := range users {
		ids[i] = users[i].ID
		index[users[i].ID] = i
		users[i].Roles = nil
	}

	var rows []userRoleRow
	err := db.WithContext(ctx).
		Table("user_roles").
		Select("user_roles.user_id, roles.id, roles.name, roles.normalized_name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id IN ?", ids).
		Order("roles.id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			continue
		}
		users[i].Roles = append(users[i].Roles, entity.Role{ID: row.ID, Name: row.Name, NormalizedName: row.NormalizedName})
	}
	return nil
}
