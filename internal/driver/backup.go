package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Backup copies path to path+suffix, preserving the file mode. An existing
// backup is overwritten.
func Backup(path, suffix string) error {
	if err := copyFile(path, path+suffix); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return nil
}

// Restore copies path+suffix back over path. It reports whether a backup
// existed; a missing backup is not an error.
func Restore(path, suffix string) (bool, error) {
	err := copyFile(path+suffix, path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
