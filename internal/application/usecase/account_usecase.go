package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/domain/entity"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// AccountUseCase operaciones del usuario sobre su propia cuenta.
type AccountUseCase struct {
	base
}

func NewAccountUseCase(repos ports.Repos, tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger) *AccountUseCase {
	return &AccountUseCase{base: newBase(repos, tx, events, log, "account_usecase")}
}

// UpdateName cambia el nombre del usuario de la sesión.
func (uc *AccountUseCase) UpdateName(ctx context.Context, sessionUserID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.current(ctx, sessionUserID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(in.Name)
	if err := validation.Validate(user.Name, validation.Required, validation.Length(1, 200)); err != nil {
		return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repos.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario actualizado")
	return entityToUserResponse(user), nil
}

// Delete elimina la cuenta. Mientras el usuario tenga empresas devuelve ErrConflict.
func (uc *AccountUseCase) Delete(ctx context.Context, sessionUserID string) error {
	user, err := uc.current(ctx, sessionUserID)
	if err != nil {
		return err
	}
	err = uc.tx.RunInTx(ctx, func(tx ports.Repos) error {
		n, err := tx.Companies.CountByOwner(ctx, user.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: el usuario aún tiene %d empresas", domain.ErrConflict, n)
		}
		return tx.Users.Delete(ctx, user.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("cuenta eliminada")
	uc.publish(ctx, ports.EventUserDeleted, user.ID, "", user.ID, nil)
	return nil
}

func (uc *AccountUseCase) current(ctx context.Context, sessionUserID string) (*entity.User, error) {
	if err := requireSession(sessionUserID); err != nil {
		return nil, err
	}
	user, err := uc.repos.Users.GetByID(ctx, sessionUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
