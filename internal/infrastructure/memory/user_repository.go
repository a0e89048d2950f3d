package memory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo almacén de credenciales en memoria, indexado por username.
type UserRepo access

func (r *UserRepo) a() access { return access(*r) }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.a().write(func(st *state) error {
		if _, ok := st.users[user.Username]; ok {
			return domain.ErrInvalidInput
		}
		st.nextUserID++
		user.ID = st.nextUserID
		st.users[user.Username] = *user
		return nil
	})
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var found *entity.User
	_ = r.a().read(func(st *state) error {
		if u, ok := st.users[username]; ok {
			found = &u
		}
		return nil
	})
	return found, nil
}

func (r *UserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	return r.a().write(func(st *state) error {
		for name, u := range st.users {
			if u.ID == id {
				u.PasswordHash = hash
				st.users[name] = u
				return nil
			}
		}
		return nil
	})
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	var n int
	_ = r.a().read(func(st *state) error {
		n = len(st.users)
		return nil
	})
	return n, nil
}

func (r *UserRepo) DeleteAll(_ context.Context) error {
	return r.a().write(func(st *state) error {
		st.users = make(map[string]entity.User)
		return nil
	})
}
