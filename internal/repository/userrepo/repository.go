package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
)

// UserRepository es la capa de persistencia de las cuentas del back-office.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository crea una nueva instancia del UserRepository.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save inserta un nuevo usuario en el DB.
func (r *UserRepository) Save(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	usuario.ID = uuid.NewString()
	usuario.FechaCreado = time.Now().UTC()

	query := `INSERT INTO usuarios (id, username, password_hash, rol, fecha_creado)
              VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		usuario.ID,
		usuario.Username,
		usuario.PasswordHash,
		string(usuario.Rol),
		usuario.FechaCreado,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.Usuario{}, apperror.NewConflictError(
				fmt.Sprintf("El usuario '%s' ya existe.", usuario.Username))
		}
		r.logger.Error("Falla al insertar el usuario en el DB.", err)
		return domain.Usuario{}, apperror.NewDBError("Falla al crear el usuario", err)
	}

	r.logger.Info("Usuario guardado con éxito.", map[string]interface{}{"user_id": usuario.ID, "username": usuario.Username})
	return usuario, nil
}

// FindByUsername busca un usuario por su nombre de cuenta.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.Usuario, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, username, password_hash, rol, fecha_creado FROM usuarios WHERE username = $1`

	var usuario domain.Usuario
	err := r.DB.QueryRowContext(ctxTimeout, query, username).Scan(
		&usuario.ID,
		&usuario.Username,
		&usuario.PasswordHash,
		&usuario.Rol,
		&usuario.FechaCreado,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Usuario{}, apperror.NewNotFoundError(fmt.Sprintf("Usuario '%s' no encontrado.", username))
		}
		r.logger.Error("Falla al buscar el usuario en el DB.", err)
		return domain.Usuario{}, apperror.NewDBError("Falla al buscar el usuario", err)
	}

	return usuario, nil
}
