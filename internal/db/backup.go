package db

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupPrefix = "backup_"
	backupExt    = ".db"
	backupStamp  = "20060102_150405"
)

// Backup copia el archivo de la base a dir como backup_YYYYMMDD_HHMMSS.db.
// Devuelve la ruta escrita, o "" si la base todavía no existe.
func Backup(dbPath, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	name := backupPrefix + time.Now().Format(backupStamp) + backupExt
	dst := filepath.Join(dir, name)
	if err := copyFile(dbPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// LastBackupTime devuelve el timestamp del backup más reciente, resuelto por
// orden lexicográfico del nombre (equivale al cronológico por el stamp fijo).
func LastBackupTime(dir string) (time.Time, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return time.Time{}, false
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if strings.HasPrefix(n, backupPrefix) && strings.HasSuffix(n, backupExt) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return time.Time{}, false
	}
	sort.Strings(names)
	last := names[len(names)-1]
	stamp := strings.TrimSuffix(strings.TrimPrefix(last, backupPrefix), backupExt)
	t, err := time.ParseInLocation(backupStamp, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
