package userRepo

import (
	"context"
	"path/filepath"

	"quotecompare/database"
	"quotecompare/models"
)

// LocalUserRepo implements UserRepository on users.json.
type LocalUserRepo struct {
	file *database.JSONFile[models.User]
}

func NewLocalUserRepo(dir string) (*LocalUserRepo, error) {
	file, err := database.NewJSONFile[models.User](filepath.Join(dir, "users.json"))
	if err != nil {
		return nil, err
	}
	return &LocalUserRepo{file: file}, nil
}

func (r *LocalUserRepo) GetByID(_ context.Context, uid string) (*models.User, error) {
	users, err := r.file.Read()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UID == uid {
			return &users[i], nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *LocalUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	users, err := r.file.Read()
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (r *LocalUserRepo) SetDisabled(_ context.Context, uid string, disabled bool) error {
	return r.mutate(uid, func(u *models.User) { u.Disabled = disabled })
}

func (r *LocalUserRepo) IncrementResponseCount(_ context.Context, uid string) error {
	return r.mutate(uid, func(u *models.User) { u.QuotesResponded++ })
}

func (r *LocalUserRepo) Upsert(_ context.Context, user *models.User) error {
	return r.mutate(user.UID, func(u *models.User) { *u = *user })
}

// mutate applies fn to the user with uid, appending a bare record first when missing.
func (r *LocalUserRepo) mutate(uid string, fn func(u *models.User)) error {
	return r.file.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].UID == uid {
				fn(&users[i])
				return users, nil
			}
		}
		users = append(users, models.User{UID: uid})
		fn(&users[len(users)-1])
		return users, nil
	})
}
