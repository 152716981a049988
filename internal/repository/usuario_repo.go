package repository

import (
	"context"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	List(ctx context.Context, idEmpresa uuid.UUID) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Permisos
	ListModulos(ctx context.Context) ([]model.Modulo, error)
	FindModulosByUsuario(ctx context.Context, idUsuario uuid.UUID) ([]model.Modulo, error)
	// ReplacePermisos swaps the user's entire module set in ONE transaction:
	// either the new set is fully in place or nothing changed. A user can
	// never be observed with a partial permission set.
	ReplacePermisos(ctx context.Context, idUsuario uuid.UUID, modulos []uuid.UUID) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context, idEmpresa uuid.UUID) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).
		Where("id_empresa = ? AND activo = true", idEmpresa).
		Order("nombre ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *usuarioRepo) ListModulos(ctx context.Context) ([]model.Modulo, error) {
	var modulos []model.Modulo
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&modulos).Error
	return modulos, err
}

func (r *usuarioRepo) FindModulosByUsuario(ctx context.Context, idUsuario uuid.UUID) ([]model.Modulo, error) {
	var modulos []model.Modulo
	err := r.db.WithContext(ctx).
		Joins("JOIN usuario_modulos um ON um.id_modulo = modulos.id").
		Where("um.id_usuario = ?", idUsuario).
		Find(&modulos).Error
	return modulos, err
}

func (r *usuarioRepo) ReplacePermisos(ctx context.Context, idUsuario uuid.UUID, modulos []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_usuario = ?", idUsuario).Delete(&model.UsuarioModulo{}).Error; err != nil {
			return err
		}
		for _, idModulo := range modulos {
			if err := tx.Create(&model.UsuarioModulo{IDUsuario: idUsuario, IDModulo: idModulo}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
