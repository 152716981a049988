package infra

import (
	"fmt"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Callers run
// RunMigrations explicitly after connecting.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations creates / updates all tables. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}
	// Ticket numbering relies on a sequence so concurrent sales never
	// collide on the numero_ticket unique index. GORM cannot express it.
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS ventas_numero_ticket_seq").Error
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Empresa{},
		&model.Sucursal{},
		&model.Caja{},
		&model.SesionCaja{},
		&model.ClienteProveedor{},
		&model.MetodoPago{},
		&model.Producto{},
		&model.Usuario{},
		&model.Modulo{},
		&model.UsuarioModulo{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Auditoria{},
	)
}
