package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nlitteri/taller-app/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(conn); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return conn
}

func TestSeedAdminUpsertea(t *testing.T) {
	conn := testDB(t)

	if err := SeedAdmin(conn, "1234"); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	var admin models.User
	if err := conn.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("admin no existe: %v", err)
	}
	if admin.Rol != models.RolAdmin {
		t.Errorf("rol = %q", admin.Rol)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("1234")) != nil {
		t.Error("la clave inicial no verifica")
	}

	// segundo arranque con otra clave: misma cuenta, clave pisada
	if err := SeedAdmin(conn, "nueva"); err != nil {
		t.Fatalf("SeedAdmin segunda vez: %v", err)
	}
	var count int64
	conn.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count != 1 {
		t.Fatalf("hay %d cuentas admin", count)
	}
	conn.Where("username = ?", "admin").First(&admin)
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("nueva")) != nil {
		t.Error("la clave nueva no verifica")
	}
}

func TestBackupYUltimoTimestamp(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "taller.db")
	if err := os.WriteFile(dbPath, []byte("contenido"), 0o644); err != nil {
		t.Fatal(err)
	}
	backupDir := filepath.Join(dir, "backups")

	path, err := Backup(dbPath, backupDir)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if path == "" {
		t.Fatal("Backup no devolvió ruta")
	}
	name := filepath.Base(path)
	if filepath.Ext(name) != ".db" || name[:7] != "backup_" {
		t.Errorf("nombre de backup inesperado: %q", name)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "contenido" {
		t.Errorf("copia ilegible o distinta: %v %q", err, data)
	}

	if _, ok := LastBackupTime(backupDir); !ok {
		t.Error("LastBackupTime no encontró la copia recién hecha")
	}
}

func TestBackupSinBase(t *testing.T) {
	dir := t.TempDir()
	path, err := Backup(filepath.Join(dir, "no-existe.db"), filepath.Join(dir, "backups"))
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if path != "" {
		t.Errorf("sin base no tiene que haber copia, devolvió %q", path)
	}
}

func TestLastBackupTimeVacio(t *testing.T) {
	if _, ok := LastBackupTime(t.TempDir()); ok {
		t.Error("directorio vacío no tiene último backup")
	}
}
