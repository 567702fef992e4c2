package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nlitteri/taller-app/internal/config"
	"github.com/nlitteri/taller-app/internal/logger"
	"github.com/nlitteri/taller-app/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports registran el driver sqlite3 y el source file para golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectAndMigrate abre el archivo sqlite, aplica el esquema y asegura el
// usuario admin. Con MIGRATIONS=1 corre las migraciones SQL versionadas de
// ./migrations; si no, AutoMigrate de los modelos (conveniencia de desarrollo).
func ConnectAndMigrate(cfg config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)}
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// sanity check: las tablas núcleo tienen que existir
	for _, table := range []string{"users", "clientes", "reparaciones", "facturas"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if err := SeedAdmin(db, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return db, nil
}

// AutoMigrate crea/ajusta las tablas a partir de los modelos, una por una para
// reportar el modelo que falla.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.User{}, &models.Cliente{}, &models.Vehiculo{}, &models.Reparacion{},
		&models.ReparacionItem{}, &models.ItemConcepto{}, &models.ReparacionImagen{},
		&models.Factura{}, &models.Cita{}, &models.Gasto{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// SeedAdmin upsertea la cuenta "admin" en cada arranque: el admin siempre entra
// con la clave configurada después de un boot, aun si alguien la cambió.
func SeedAdmin(db *gorm.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	var admin models.User
	err = db.Where("username = ?", "admin").First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.User{Username: "admin", Password: string(hash), Rol: models.RolAdmin}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logger.Get().WithField("user", "admin").Info("admin account created")
	case err != nil:
		return err
	default:
		if err := db.Model(&admin).Updates(map[string]any{"password": string(hash), "rol": models.RolAdmin}).Error; err != nil {
			return err
		}
	}
	return nil
}

// runSQLMigrations ejecuta ./migrations con el source file de golang-migrate.
func runSQLMigrations(dbPath string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+dbPath)
	if err != nil {
		return err
	}
	v, dirty, _ := m.Version()
	logger.Get().WithField("version", v).WithField("dirty", dirty).Info("applying sql migrations")
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
